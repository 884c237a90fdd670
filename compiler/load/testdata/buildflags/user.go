package buildflags

// User is always loaded.
//
//buildergen:builder
type User struct {
	Name string
}
