package model

import "errors"

// Sentinel kinds for model validation errors.
var (
	ErrUnknownDecision = errors.New("unknown decision")
)
