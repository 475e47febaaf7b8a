package model

import (
	"errors"
	"fmt"
)

// ErrClosed is returned once the owning view has been torn down.
var ErrClosed = errors.New("checker: view closed")

// ValidationError reports a submission rejected before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// TransportError covers every failure to obtain or decode an availability
// answer: connection errors, non-2xx status, malformed bodies.
type TransportError struct {
	Name       string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("check %q: status %d: %v", e.Name, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("check %q: %v", e.Name, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
