package errs

import "errors"

// Outcome classes returned by the quote use cases. Concrete errors are
// attached to one of these with Mark so callers can branch with Is.
var (
	// backing store unreachable; safe to retry
	ErrQuoteNotAvailable = errors.New("quote store not available")

	ErrQuoteNotFound     = errors.New("quote not found")
	ErrInvalidTransition = errors.New("invalid quote status transition")
	ErrValidationFailure = errors.New("quote validation failed")
)
