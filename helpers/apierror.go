package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind classifies an APIError independently of its HTTP status.
type Kind string

const (
	KindInvalidArgument Kind = "InvalidArgument"
	KindUnauthorized    Kind = "Unauthorized"
	KindForbidden       Kind = "Forbidden"
	KindNotFound        Kind = "NotFound"
	KindConflict        Kind = "Conflict"
	KindRateLimited     Kind = "RateLimited"
	KindUpstream        Kind = "Upstream"
	KindInternal        Kind = "Internal"
)

// APIError is the only error type whose message reaches a client.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Errors  []string
	cause   error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

// Wrap attaches the underlying cause for logging. The cause is never rendered.
func (e *APIError) Wrap(err error) *APIError {
	e.cause = err
	return e
}

// WithDetails appends per-field messages to the error body.
func (e *APIError) WithDetails(details ...string) *APIError {
	e.Errors = append(e.Errors, details...)
	return e
}

func newAPIError(kind Kind, status int, format string, args ...any) *APIError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &APIError{Kind: kind, Status: status, Message: msg}
}

func InvalidArgument(format string, args ...any) *APIError {
	return newAPIError(KindInvalidArgument, http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *APIError {
	return newAPIError(KindUnauthorized, http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *APIError {
	return newAPIError(KindForbidden, http.StatusForbidden, format, args...)
}

func NotFound(format string, args ...any) *APIError {
	return newAPIError(KindNotFound, http.StatusNotFound, format, args...)
}

func Conflict(format string, args ...any) *APIError {
	return newAPIError(KindConflict, http.StatusConflict, format, args...)
}

func TooManyRequests(format string, args ...any) *APIError {
	return newAPIError(KindRateLimited, http.StatusTooManyRequests, format, args...)
}

// Upstream reports an asset host failure. The provider error is kept as the
// cause and never rendered.
func Upstream(err error, format string, args ...any) *APIError {
	return newAPIError(KindUpstream, http.StatusBadGateway, format, args...).Wrap(err)
}

func Internal(err error) *APIError {
	return newAPIError(KindInternal, http.StatusInternalServerError, "Something went wrong").Wrap(err)
}

// AsAPIError reports whether err carries an *APIError anywhere in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

// FromStoreError maps driver errors that mean something to a client. what
// names the entity for the message ("video", "playlist"). Other errors are
// returned unchanged so the request boundary can turn them into Internal.
func FromStoreError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound("%s not found", what).Wrap(err)
	case mongo.IsDuplicateKeyError(err):
		return Conflict("%s already exists", what).Wrap(err)
	}
	return err
}
