package gen

import (
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/syssam/buildergen/compiler/load"
)

// typecheck generates the builders of src and type-checks them together
// with src as the package in testdata/typecheck.
func typecheck(t *testing.T, name, src string, opts ...Option) {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("testdata", "typecheck"))
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	records, err := (&load.Config{}).ParseFile(token.NewFileSet(), path, src)
	require.NoError(t, err)
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)
	g, err := NewGraph(cfg, records...)
	require.NoError(t, err)

	overlay := map[string][]byte{path: []byte(src)}
	gen := NewJenniferGenerator(g)
	for _, f := range g.Files() {
		out, err := gen.Render(gen.GenFile(f))
		require.NoError(t, err)
		overlay[f.Path] = out
	}
	pkgs, err := packages.Load(&packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:     dir,
		Overlay: overlay,
	}, ".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	var errs []string
	for _, e := range pkgs[0].Errors {
		errs = append(errs, e.Error())
	}
	assert.Empty(t, errs, "%s", overlay[g.OutputPath(path)])
	assert.False(t, pkgs[0].IllTyped)
}

func TestGeneratedCodeTypeChecks(t *testing.T) {
	all := WithFeatures(FeatureConstructor, FeatureBuildX, FeatureReset)
	tests := []struct {
		name string
		file string
		src  string
	}{
		{
			name: "generic record with single letter type parameters",
			file: "pair.go",
			src: `package typecheck

import "github.com/syssam/buildergen/option"

//buildergen:builder
type Pair[a, b any] struct {
	First  a
	Second option.Option[b]
	Rest   []b ` + "`builder:\"each=More\"`" + `
}
`,
		},
		{
			name: "records named like generated identifiers",
			file: "names.go",
			src: `package typecheck

//buildergen:builder
type ok struct {
	Value int
}

//buildergen:builder
type r struct {
	Value int
	Items []string ` + "`builder:\"each\"`" + `
}

//buildergen:builder
type b struct {
	N int
}

//buildergen:builder
type err struct {
	Reason string
}
`,
		},
		{
			name: "each setters",
			file: "command.go",
			src: `package typecheck

import (
	"time"

	"github.com/syssam/buildergen/option"
)

//buildergen:builder
type Command struct {
	Executable string
	Args       option.Option[[]string] ` + "`builder:\"each=Arg\"`" + `
	Env        []string ` + "`builder:\"each\"`" + `
	Timeouts   []time.Duration ` + "`builder:\"each=Timeout\"`" + `
}
`,
		},
		{
			name: "constrained generic record",
			file: "set.go",
			src: `package typecheck

import "github.com/syssam/buildergen/option"

//buildergen:builder
type Set[K comparable, V ~int | ~string] struct {
	Keys  []K ` + "`builder:\"each=Key\"`" + `
	Value option.Option[V]
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			typecheck(t, tt.file, tt.src, all)
		})
	}
}
