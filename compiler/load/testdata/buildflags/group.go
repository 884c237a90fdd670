//go:build !hidegroups

package buildflags

// Group is excluded by the hidegroups build tag.
//
//buildergen:builder
type Group struct {
	Name    string
	Members []string
}
