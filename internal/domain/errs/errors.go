package errs

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when input data is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState is returned when an entity is in a state that does not
	// allow the requested operation
	ErrInvalidState = errors.New("invalid state")

	// ErrUnsupportedPayload is returned when a drop target does not accept
	// the dragged payload type
	ErrUnsupportedPayload = errors.New("unsupported payload type")

	// ErrMalformedPayload is returned when a drag payload cannot be decoded
	ErrMalformedPayload = errors.New("malformed drag payload")
)
