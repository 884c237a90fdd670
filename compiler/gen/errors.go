// Package gen provides code generation for buildergen records.
package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

var (
	// ErrInvalidRecord is matched by every RecordError.
	ErrInvalidRecord = errors.New("buildergen: record cannot get a builder")
	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("buildergen: invalid configuration")
	// ErrGenerationFailed is matched by every GenerationError.
	ErrGenerationFailed = errors.New("buildergen: builder generation failed")
)

// RecordError reports an annotated record, or one of its fields, for which
// no compilable builder exists: an unsupported field type, a malformed
// builder tag or a setter name taken twice.
type RecordError struct {
	Pos    token.Position
	Record string
	// Field is empty when the record itself is at fault.
	Field  string
	Reason string
	Err    error
}

// NewRecordError returns an error about the given record field. Either
// reason or err may be empty.
func NewRecordError(record, field, reason string, err error) *RecordError {
	return &RecordError{Record: record, Field: field, Reason: reason, Err: err}
}

// At records where the offending declaration starts.
func (e *RecordError) At(pos token.Position) *RecordError {
	e.Pos = pos
	return e
}

// Error formats as "file:line:col: buildergen: record R field F: reason: err".
func (e *RecordError) Error() string {
	subject := "record " + e.Record
	if e.Field != "" {
		subject += " field " + e.Field
	}
	msg := join("buildergen: "+subject, e.Reason, e.Err)
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + msg
	}
	return msg
}

func (e *RecordError) Unwrap() error { return e.Err }

func (e *RecordError) Is(target error) bool { return target == ErrInvalidRecord }

// ConfigError reports a generator option with an unusable value.
type ConfigError struct {
	Option string
	// Value is the rejected value, nil when the option was missing.
	Value  any
	Reason string
}

// NewConfigError returns an error about the given option.
func NewConfigError(option string, value any, reason string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Reason: reason}
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("buildergen: option %s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("buildergen: option %s=%v: %s", e.Option, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// GenerationError reports a failed operation on a builder file.
type GenerationError struct {
	// Stage is one of "render", "format", "write" or "prune".
	Stage  string
	File   string
	Reason string
	Err    error
}

// NewGenerationError returns an error about the given output file.
func NewGenerationError(stage, file, reason string, err error) *GenerationError {
	return &GenerationError{Stage: stage, File: file, Reason: reason, Err: err}
}

// Error formats as "buildergen: stage file: reason: err".
func (e *GenerationError) Error() string {
	subject := "buildergen: " + e.Stage
	if e.File != "" {
		subject += " " + e.File
	}
	return join(subject, e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// join appends the non-empty parts of an error message to subject.
func join(subject, reason string, err error) string {
	parts := []string{subject}
	if reason != "" {
		parts = append(parts, reason)
	}
	if err != nil {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, ": ")
}

// IsRecordError reports whether err holds a *RecordError.
func IsRecordError(err error) bool {
	var target *RecordError
	return errors.As(err, &target)
}

// IsConfigError reports whether err holds a *ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsGenerationError reports whether err holds a *GenerationError.
func IsGenerationError(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}
