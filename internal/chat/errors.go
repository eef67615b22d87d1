package chat

import "errors"

// Sentinel errors returned by the chat service. Handlers map these to
// HTTP status codes at the boundary.
var (
	// ErrNotFound is returned when a referenced conversation, message or
	// user id does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrPermission is returned when the caller lacks the participant or
	// ownership capability required by an operation.
	ErrPermission = errors.New("permission denied")

	// ErrValidation is returned for rejected input: empty content, a parent
	// from another conversation, or a self-addressed receiver.
	ErrValidation = errors.New("validation failed")

	// ErrCyclicThread is returned when resolving a thread root encounters a
	// cyclic parent chain. The chain is never auto-repaired.
	ErrCyclicThread = errors.New("cyclic parent chain detected")
)
