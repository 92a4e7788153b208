package entity

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap one of these so callers can use errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrInternalFault    = errors.New("internal fault")
)

// ValidationError is a client-side input error carrying a human-readable message.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// UpstreamError reports a transport or non-2xx failure from the indexing API.
// StatusCode is 0 when no HTTP response was received.
type UpstreamError struct {
	Kind       FetchKind
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Failed to fetch %s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
