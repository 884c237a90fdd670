package option

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option is a value that is either empty or holds exactly one value of type T.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPointer returns an empty Option for a nil pointer and an Option
// holding *p otherwise.
func FromPointer[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the held value and true, or the zero value and false.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether o holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether o is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// OrZero returns the held value, or the zero value of T if o is empty.
func (o Option[T]) OrZero() T {
	return o.value
}

// OrElse returns the held value, or def if o is empty.
func (o Option[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

// MustGet returns the held value and panics if o is empty.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("option: MustGet on empty Option")
	}
	return o.value
}

// Pointer returns a pointer to a copy of the held value, or nil.
func (o Option[T]) Pointer() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// Set stores v in o, replacing any previous value.
func (o *Option[T]) Set(v T) {
	o.value, o.ok = v, true
}

// Take returns the current content of o and leaves o empty.
func (o *Option[T]) Take() Option[T] {
	taken := *o
	*o = Option[T]{}
	return taken
}

// Clear empties o.
func (o *Option[T]) Clear() {
	*o = Option[T]{}
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

var null = []byte("null")

// MarshalJSON implements json.Marshaler.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return null, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), null) {
		o.Clear()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Option[T]) MarshalYAML() (any, error) {
	if !o.ok {
		return nil, nil
	}
	return o.value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Option[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		o.Clear()
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}

// IsZero reports whether o is empty. It lets encoders honour omitempty.
func (o Option[T]) IsZero() bool {
	return !o.ok
}
