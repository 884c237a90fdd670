package buildergen

import (
	"errors"
	"fmt"
)

// ErrNotSet is matched by every NotSetError.
var ErrNotSet = errors.New("buildergen: field not set")

// NotSetError is returned by a generated Build method when a required
// field was never set on the builder.
type NotSetError struct {
	field string
}

// Error returns the error string.
func (e *NotSetError) Error() string {
	return fmt.Sprintf("The field `%s` was not setted.", e.field)
}

// Is reports whether the target error matches NotSetError.
// This allows errors.Is(notSetErr, ErrNotSet) to return true.
func (e *NotSetError) Is(err error) bool {
	return err == ErrNotSet
}

// Field returns the name of the unset field.
func (e *NotSetError) Field() string {
	return e.field
}

// NewNotSetError returns a new NotSetError for the given field name.
func NewNotSetError(field string) *NotSetError {
	return &NotSetError{field: field}
}

// IsNotSet returns true if the error is a NotSetError.
func IsNotSet(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSetError
	return errors.As(err, &e) || errors.Is(err, ErrNotSet)
}

// NotSetField returns the field name carried by the first NotSetError in
// err's chain, and false if there is none.
func NotSetField(err error) (string, bool) {
	var e *NotSetError
	if !errors.As(err, &e) {
		return "", false
	}
	return e.field, true
}
