package records

import (
	"time"

	opt "github.com/syssam/buildergen/option"
)

//buildergen:builder
type Server struct {
	Host    string
	Port    int
	Timeout opt.Option[time.Duration]
}

// Plain is not annotated.
type Plain struct {
	Name string
}

type (
	//buildergen:builder
	Pair[K comparable, V any] struct {
		Key   K
		Value V
	}
)
