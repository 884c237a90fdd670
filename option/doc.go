// Package option provides Option, the absence-capable container used by
// generated builders.
//
// An Option either holds exactly one value or is empty. The zero Option is
// empty, so a freshly allocated builder starts with every slot unset:
//
//	var o option.Option[string] // empty
//	o.Set("make")               // holds "make"
//	v := o.Take()               // v holds "make", o is empty again
//
// Declaring a struct field as Option[T] marks it optional for buildergen:
// the generated builder does not require a setter call for it and the built
// value carries an empty Option when it was never set.
//
// # Concurrency
//
// Option is a plain value with no synchronization. Methods with a pointer
// receiver (Set, Take, Clear) mutate in place and must not race with other
// accesses to the same Option.
//
// # Encoding
//
// Option implements json.Marshaler/Unmarshaler and yaml.Marshaler/Unmarshaler.
// An empty Option encodes as null, and null decodes to an empty Option.
package option
