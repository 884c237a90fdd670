package failure

// Status cannot have a builder.
//
//buildergen:builder
type Status int

// Empty cannot have a builder.
//
//buildergen:builder
type Empty struct{}

// Valid is loaded, but the package still fails.
//
//buildergen:builder
type Valid struct {
	Name string
}
