package load

import (
	"errors"
	"go/token"
	"strings"
)

// ErrUnsupported is matched by every UnsupportedError.
var ErrUnsupported = errors.New("buildergen: unsupported declaration")

// UnsupportedError reports an annotated declaration whose shape cannot
// carry a builder.
type UnsupportedError struct {
	Pos    token.Position
	Type   string // Declared type name
	Field  string // Field name (if applicable)
	Reason string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("buildergen: unsupported declaration")
	if e.Type != "" {
		b.WriteString(" of type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Is reports whether the target matches ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

func unsupported(pos token.Position, typ, field, reason string) *UnsupportedError {
	return &UnsupportedError{Pos: pos, Type: typ, Field: field, Reason: reason}
}

// IsUnsupported reports whether the error is an UnsupportedError.
func IsUnsupported(err error) bool {
	var e *UnsupportedError
	return errors.As(err, &e)
}
