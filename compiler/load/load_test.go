package load

import (
	"context"
	"errors"
	"go/ast"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, cfg *Config, src string) ([]*Record, error) {
	t.Helper()
	return cfg.ParseFile(token.NewFileSet(), "command.go", src)
}

func TestParseFile(t *testing.T) {
	t.Run("finds annotated structs", func(t *testing.T) {
		records, err := parse(t, &Config{}, `package cmd

import "github.com/syssam/buildergen/option"

//buildergen:builder
type Command struct {
	Executable string
	// Args are passed verbatim.
	Args       option.Option[[]string] `+"`builder:\"each=Arg\"`"+`
	CurrentDir option.Option[string]
}

type Other struct{ Name string }
`)
		require.NoError(t, err)
		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, "Command", r.Name)
		assert.Equal(t, "cmd", r.PkgName)
		assert.Equal(t, "command.go", r.File)
		assert.Equal(t, 6, r.Pos.Line)
		require.Len(t, r.Fields, 3)
		assert.Equal(t, "Executable", r.Fields[0].Name)
		assert.Equal(t, "Args", r.Fields[1].Name)
		assert.Equal(t, "Args are passed verbatim.", r.Fields[1].Comment)
		each, ok := r.Fields[1].Lookup("builder")
		assert.True(t, ok)
		assert.Equal(t, "each=Arg", each)
		assert.Equal(t, "CurrentDir", r.Fields[2].Name)
		p, ok := r.ImportPath("option")
		assert.True(t, ok)
		assert.Equal(t, "github.com/syssam/buildergen/option", p)
	})

	t.Run("expands grouped field names in order", func(t *testing.T) {
		records, err := parse(t, &Config{}, `package p
//buildergen:builder
type Point struct {
	X, Y int
	Z    int
}
`)
		require.NoError(t, err)
		require.Len(t, records, 1)
		var names []string
		for _, f := range records[0].Fields {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"X", "Y", "Z"}, names)
		assert.Same(t, records[0].Fields[0].Type, records[0].Fields[1].Type)
	})

	t.Run("keeps type parameters", func(t *testing.T) {
		records, err := parse(t, &Config{}, `package p
//buildergen:builder
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}
`)
		require.NoError(t, err)
		require.Len(t, records, 1)
		tps := records[0].TypeParams
		require.Len(t, tps, 2)
		assert.Equal(t, "K", tps[0].Name)
		assert.Equal(t, "comparable", tps[0].Constraint.(*ast.Ident).Name)
		assert.Equal(t, "V", tps[1].Name)
	})

	t.Run("directive on grouped declaration applies to spec only", func(t *testing.T) {
		records, err := parse(t, &Config{}, `package p
//buildergen:builder
type (
	A struct{ N int }
	//buildergen:builder
	B struct{ N int }
)
`)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "B", records[0].Name)
	})

	t.Run("directive needs exact spelling", func(t *testing.T) {
		records, err := parse(t, &Config{}, `package p
// buildergen:builder
type A struct{ N int }
`)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("custom directive", func(t *testing.T) {
		records, err := parse(t, &Config{Directive: "gen:builder"}, `package p
//gen:builder
type A struct{ N int }
//buildergen:builder
type B struct{ N int }
`)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "A", records[0].Name)
	})

	t.Run("selects by type name", func(t *testing.T) {
		records, err := parse(t, &Config{Types: []string{"B"}}, `package p
//buildergen:builder
type A struct{ N int }
type B struct{ N int }
`)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "B", records[0].Name)
	})

	t.Run("reports missing selected type", func(t *testing.T) {
		_, err := parse(t, &Config{Types: []string{"Missing"}}, `package p
type A struct{ N int }
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type Missing not found")
	})

	t.Run("skips generated files", func(t *testing.T) {
		records, err := parse(t, &Config{}, `// Code generated by buildergen. DO NOT EDIT.

package p

//buildergen:builder
type A struct{ N int }
`)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := parse(t, &Config{}, `package p
type A struct{
`)
		require.Error(t, err)
		assert.False(t, IsUnsupported(err))
	})
}

func TestUnsupportedShapes(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		field  string
		reason string
	}{
		{
			name:   "non struct",
			src:    "type A int",
			reason: "only struct types can have builders, got int",
		},
		{
			name:   "interface",
			src:    "type A interface{ M() }",
			reason: "got interface type",
		},
		{
			name:   "alias",
			src:    "type A = struct{ N int }",
			reason: "alias declarations",
		},
		{
			name:   "unit struct",
			src:    "type A struct{}",
			reason: "struct has no fields",
		},
		{
			name:   "embedded field",
			src:    "type A struct{ N int; fmt.Stringer }",
			field:  "fmt.Stringer",
			reason: "embedded fields",
		},
		{
			name:   "blank field",
			src:    "type A struct{ N int; _ int }",
			field:  "_",
			reason: "blank fields",
		},
		{
			name:   "dot import",
			src:    "import . \"strings\"\n//buildergen:builder\ntype A struct{ B Builder }",
			reason: "dot imports",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package p\n" + tt.src + "\n"
			if tt.name != "dot import" {
				src = "package p\n//buildergen:builder\n" + tt.src + "\n"
			}
			_, err := parse(t, &Config{}, src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupported))
			var ue *UnsupportedError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, "A", ue.Type)
			assert.Equal(t, tt.field, ue.Field)
			assert.Contains(t, ue.Reason, tt.reason)
			assert.True(t, ue.Pos.IsValid())
		})
	}
}

func TestUnsupportedErrorsAreJoined(t *testing.T) {
	_, err := parse(t, &Config{}, `package p
//buildergen:builder
type A int
//buildergen:builder
type B struct{}
//buildergen:builder
type C struct{ N int }
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type A")
	assert.Contains(t, err.Error(), "type B")
	assert.NotContains(t, err.Error(), "type C")
}

func TestUnsupportedErrorMessage(t *testing.T) {
	err := &UnsupportedError{
		Pos:    token.Position{Filename: "a.go", Line: 3, Column: 2},
		Type:   "A",
		Field:  "F",
		Reason: "blank fields cannot be set by a builder",
	}
	assert.Equal(t, "a.go:3:2: buildergen: unsupported declaration of type A field F: blank fields cannot be set by a builder", err.Error())
	assert.Equal(t, "buildergen: unsupported declaration", (&UnsupportedError{}).Error())
}

func TestImportName(t *testing.T) {
	tests := map[string]string{
		"fmt":                                 "fmt",
		"github.com/google/uuid":              "uuid",
		"gopkg.in/yaml.v3":                    "yaml",
		"github.com/vmihailenco/msgpack/v5":   "msgpack",
		"github.com/go-openapi/inflect":       "inflect",
		"github.com/syssam/buildergen/option": "option",
		"github.com/mattn/go-isatty":          "isatty",
		"github.com/x/client-go":              "client",
	}
	for in, want := range tests {
		assert.Equal(t, want, ImportName(in), in)
	}
}

func TestRecordImports(t *testing.T) {
	records, err := parse(t, &Config{}, `package p

import (
	"time"
	u "github.com/google/uuid"
	_ "embed"
)

//buildergen:builder
type A struct {
	ID u.UUID
	At time.Time
}
`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	p, ok := r.ImportPath("u")
	assert.True(t, ok)
	assert.Equal(t, "github.com/google/uuid", p)
	assert.True(t, r.Aliased("u"))
	assert.False(t, r.Aliased("time"))
	_, ok = r.ImportPath("embed")
	assert.False(t, ok)
}

func TestRecordImportsVersionedPath(t *testing.T) {
	records, err := parse(t, &Config{}, `package p

import (
	"k8s.io/api/core/v1"
	"github.com/vmihailenco/msgpack/v5"
)

//buildergen:builder
type Spec struct {
	Pod  v1.Pod
	Raw  msgpack.RawMessage
}
`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	p, ok := r.ImportPath("v1")
	require.True(t, ok)
	assert.Equal(t, "k8s.io/api/core/v1", p)
	assert.False(t, r.Aliased("v1"))
	_, ok = r.ImportPath("core")
	assert.False(t, ok)
	p, ok = r.ImportPath("msgpack")
	require.True(t, ok)
	assert.Equal(t, "github.com/vmihailenco/msgpack/v5", p)
}

func TestLoadImportNames(t *testing.T) {
	cfg := &Config{Dir: "testdata/imports"}
	records, err := cfg.Load(context.Background(), ".")
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	p, ok := r.ImportPath("widget")
	require.True(t, ok)
	assert.Equal(t, "github.com/syssam/buildergen/compiler/load/testdata/imports/parts/v2", p)
	assert.False(t, r.Aliased("widget"))
	_, ok = r.ImportPath("parts")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	cfg := &Config{Dir: "testdata/records"}
	records, err := cfg.Load(context.Background(), ".")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Server", records[0].Name)
	assert.Equal(t, "records", records[0].PkgName)
	assert.Equal(t, "github.com/syssam/buildergen/compiler/load/testdata/records", records[0].PkgPath)
	assert.Len(t, records[0].Fields, 3)
	p, ok := records[0].ImportPath("opt")
	assert.True(t, ok)
	assert.Equal(t, "github.com/syssam/buildergen/option", p)

	assert.Equal(t, "Pair", records[1].Name)
	assert.Len(t, records[1].TypeParams, 2)
}

func TestPackageDirs(t *testing.T) {
	cfg := &Config{Dir: "testdata/records"}
	dirs, err := cfg.PackageDirs(context.Background())
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, "records", filepath.Base(dirs[0]))
	assert.True(t, filepath.IsAbs(dirs[0]))
}

func TestLoadBuildFlags(t *testing.T) {
	records, err := (&Config{Dir: "testdata/buildflags"}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = (&Config{Dir: "testdata/buildflags", BuildFlags: []string{"-tags=hidegroups"}}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "User", records[0].Name)
}

func TestLoadFailure(t *testing.T) {
	records, err := (&Config{Dir: "testdata/failure"}).Load(context.Background(), ".")
	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, IsUnsupported(err))
	assert.ErrorContains(t, err, "only struct types can have builders, got int")
	assert.ErrorContains(t, err, "struct has no fields")
	assert.NotContains(t, err.Error(), "Valid")
}
