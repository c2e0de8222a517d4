package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr   = errors.New("addr must not be empty")
	ErrEmptyRoster = errors.New("reviewers must not be empty")
	ErrBadLimits   = errors.New("default_limit must be positive and at most max_limit")
)
