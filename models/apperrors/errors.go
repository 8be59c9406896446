package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindInvalidRequest         Kind = "INVALID_REQUEST"
	KindValidation             Kind = "VALIDATION_ERROR"
	KindInvalidTransition      Kind = "INVALID_TRANSITION"
	KindConcurrentModification Kind = "CONCURRENT_MODIFICATION"
	KindStorage                Kind = "STORAGE_ERROR"
	KindNotFound               Kind = "NOT_FOUND"
)

type Error struct {
	Kind    Kind
	Field   string // set for field-level validation failures
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func OnField(kind Kind, field, message string) error {
	return &Error{Kind: kind, Field: field, Message: message}
}

func Wrap(kind Kind, cause error, message string) error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the taxonomy kind from err. Errors raised outside the
// taxonomy (gorm, network) are treated as opaque storage failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// AsError returns the taxonomy error inside err, or nil.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
