package fleet

import "errors"

var (
	// ErrInvalidInput - malformed or out of range request data, surfaced
	// to the caller and never retried
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound - the referenced vehicle does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnavailable - the durable store is unreachable; read paths fall
	// back, the ingest path continues broadcast-only
	ErrUnavailable = errors.New("store unavailable")
)
