package assistant

import "errors"

var (
	// ErrInvalidInput marks malformed, oversized or spam-like user input.
	// The message is rejected before classification.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound is returned for operations on unknown session ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrClassification is the internal catch-all for reply generation
	// failures. It never reaches the end user; callers see the apology
	// reply instead.
	ErrClassification = errors.New("classification failure")
)
