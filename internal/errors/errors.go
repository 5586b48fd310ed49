package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Base error types
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrNotFound     = errors.New("not found")
	ErrFetchFailed  = errors.New("fetch failed")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Kind categorizes a portal error.
type Kind string

const (
	KindAuth       Kind = "auth_required"
	KindFetch      Kind = "fetch"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// PortalError is a structured error for portal operations. Failures are
// contained at the component that issued the operation; handlers map a
// PortalError to exactly one HTTP response.
type PortalError struct {
	Kind       Kind
	Op         string // operation that failed (e.g. "load_clients")
	Collection string // backend collection if applicable
	StatusCode int    // upstream HTTP status if applicable
	Err        error
	Timestamp  time.Time
}

func (e *PortalError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PortalError) Unwrap() error {
	return e.Err
}

// Is maps kinds onto the base sentinel errors.
func (e *PortalError) Is(target error) bool {
	switch target {
	case ErrAuthRequired:
		return e.Kind == KindAuth
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrFetchFailed:
		return e.Kind == KindFetch
	case ErrInvalidInput:
		return e.Kind == KindValidation
	}
	return errors.Is(e.Err, target)
}

// HTTPStatus returns the response status a handler should emit for e.
func (e *PortalError) HTTPStatus() int {
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindFetch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewAuthError creates an authentication-required error.
func NewAuthError(op string, err error) *PortalError {
	return &PortalError{Kind: KindAuth, Op: op, Err: err, Timestamp: time.Now()}
}

// NewFetchError creates an error for a failed backend query.
func NewFetchError(op, collection string, statusCode int, err error) *PortalError {
	return &PortalError{
		Kind:       KindFetch,
		Op:         op,
		Collection: collection,
		StatusCode: statusCode,
		Err:        err,
		Timestamp:  time.Now(),
	}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(op, collection string) *PortalError {
	return &PortalError{
		Kind:       KindNotFound,
		Op:         op,
		Collection: collection,
		Err:        ErrNotFound,
		Timestamp:  time.Now(),
	}
}

// NewValidationError creates an invalid-input error.
func NewValidationError(op string, err error) *PortalError {
	return &PortalError{Kind: KindValidation, Op: op, Err: err, Timestamp: time.Now()}
}

// AsPortalError extracts a *PortalError from an error chain, wrapping
// unknown errors as internal so callers always get a mappable error.
func AsPortalError(op string, err error) *PortalError {
	var pe *PortalError
	if errors.As(err, &pe) {
		return pe
	}
	return &PortalError{Kind: KindInternal, Op: op, Err: err, Timestamp: time.Now()}
}
