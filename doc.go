// Package buildergen holds the runtime support imported by generated
// builders, and documents the generator.
//
// Annotate a struct with the buildergen directive and run the generator:
//
//	//go:generate go run github.com/syssam/buildergen/cmd/buildergen
//
//	//buildergen:builder
//	type Command struct {
//		Executable string
//		Args       option.Option[[]string] `builder:"each=Arg"`
//		CurrentDir option.Option[string]
//	}
//
// The generator writes command_builder.go next to the source file with a
// CommandBuilder type, one chained setter per field, and a Build method:
//
//	cmd, err := Command{}.Builder().
//		Executable("cargo").
//		Arg("build").
//		Arg("--release").
//		Build()
//
// Build fails with a *NotSetError for the first required field that was not
// set. Fields declared as option.Option[T] are optional and stay empty when
// their setter is never called. Build clears every slot it reads, so a second
// Build on the same builder needs the required setters called again.
//
// Builders are plain mutable values with no internal locking.
package buildergen
