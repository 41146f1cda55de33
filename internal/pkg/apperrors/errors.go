package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP error handler.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindRateLimited
	KindServiceUnavailable
	KindServiceError
	KindEmptyResponse
	KindTimeout
)

// Error carries a kind plus a user-safe message. Wrapped causes stay internal.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func RateLimited(message string) *Error {
	return New(KindRateLimited, message)
}

func ServiceUnavailable(message string) *Error {
	return New(KindServiceUnavailable, message)
}

func ServiceError(message string, err error) *Error {
	return Wrap(KindServiceError, message, err)
}

func EmptyResponse(message string) *Error {
	return New(KindEmptyResponse, message)
}

func Timeout(message string) *Error {
	return New(KindTimeout, message)
}

// KindOf extracts the kind from any error in the chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
