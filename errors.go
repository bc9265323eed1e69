package dilu

import "errors"

// Sentinel errors returned by the engine's phases. Callers should use
// errors.Is against these rather than matching on message text.
var (
	ErrAllocationFailed  = errors.New("dilu: allocation failed")
	ErrEmptyCandidateSet = errors.New("dilu: candidate set too small for requested removals")
	ErrPrecondViolated   = errors.New("dilu: precondition violated")
	ErrCorruptLink       = errors.New("dilu: corrupt row link")
	ErrNumericDefect     = errors.New("dilu: numeric defect during sweep")
)
