package imports

import "github.com/syssam/buildergen/compiler/load/testdata/imports/parts/v2"

//buildergen:builder
type Order struct {
	Part widget.Part
}
