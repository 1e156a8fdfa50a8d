package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthentication reports that no logged-in account is available.
	ErrAuthentication = errors.New("not authenticated")
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
)

// RemoteError describes a failed call against the remote API: transport,
// decoding or a non-2xx response.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is lets callers match HTTP failures against the domain sentinels.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ValidationError carries the offending field, modelled after a
// base-error-plus-field shape so errors.Is(err, ErrValidation) keeps working.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func IsAuthentication(err error) bool { return errors.Is(err, ErrAuthentication) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
