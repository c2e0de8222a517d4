package suggest

import "errors"

// Sentinel kinds for suggestion intake errors. The service never
// collapses these into "zero suggestions": an unavailable generator
// and an unparseable payload are distinct, reportable failures.
var (
	ErrUnavailable = errors.New("suggestion service unavailable")
	ErrBadPayload  = errors.New("suggestion payload unparseable")
	ErrNoFeedback  = errors.New("no swipe feedback to summarize")
	ErrDisabled    = errors.New("suggestion intake not configured")
)
