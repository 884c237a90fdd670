// Package gen provides code generation of builders for annotated records.
//
// A record is a struct declaration loaded by the load package. For each
// record the generator emits a companion builder type holding one
// absence-capable slot per field, a chained setter per field and a Build
// method assembling the record.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Annotated source (//buildergen:builder)
//	        ↓
//	   load.Record (declaration parser)
//	        ↓
//	   Graph of Type (field classifier)
//	        ↓
//	   JenniferGenerator (structure and behavior synthesizers)
//	        ↓
//	   <file>_builder.go next to each source file
//
// # Key Types
//
//   - Graph: Holds all Type definitions of one run
//   - Type: A record with its builder naming and classified fields
//   - Field: Declared and effective type, optionality, tag attributes
//   - Config: Global configuration for code generation
//
// # Field classification
//
// A field whose type is spelled Option[T] or pkg.Option[T] is optional:
// its setter takes T and Build leaves it empty when the setter was never
// called. The match is by name only. Every other field is required.
//
// A builder:"each=Name" struct tag on a slice field adds an appending
// setter taking one element. A bare builder:"each" uses the singular form
// of the field name.
//
// # Error Handling
//
// Records that cannot get a compilable builder fail with a *RecordError
// carrying the position of the declaration. NewGraph reports the errors of
// all records at once, joined:
//
//	graph, err := gen.NewGraph(cfg, records...)
//	if errors.Is(err, gen.ErrInvalidRecord) {
//		var recordErr *gen.RecordError
//		if errors.As(err, &recordErr) {
//			log.Printf("%s: field %s of %s: %s", recordErr.Pos, recordErr.Field, recordErr.Record, recordErr.Reason)
//		}
//	}
//
// Options fail with a *ConfigError and output files with a
// *GenerationError.
package gen
