// Package gentest runs the generator in memory for tests of committed
// generated code.
package gentest

import (
	"bytes"
	"context"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

// MemWriter keeps generated files in memory, keyed by path.
type MemWriter struct {
	mu    sync.Mutex
	Files map[string][]byte
}

// Write implements gen.Writer.
func (w *MemWriter) Write(_ context.Context, path string, src []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Files == nil {
		w.Files = make(map[string][]byte)
	}
	w.Files[path] = bytes.Clone(src)
	return nil
}

// Generate loads the package in dir and returns its generated files.
func Generate(t testing.TB, dir string, opts ...gen.Option) map[string][]byte {
	t.Helper()
	records, err := (&load.Config{Dir: dir}).Load(context.Background(), ".")
	require.NoError(t, err)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	graph, err := gen.NewGraph(cfg, records...)
	require.NoError(t, err)
	w := &MemWriter{}
	require.NoError(t, gen.NewJenniferGenerator(graph).WithWriter(w).Generate(context.Background()))
	return w.Files
}

// Decls returns the imports and the declarations of a Go file, each with
// its doc comment, in a layout-independent form.
func Decls(t testing.TB, src []byte) []string {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	require.NoError(t, err)
	var (
		imports []string
		decls   []string
	)
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)
		if spec.Name != nil {
			path = spec.Name.Name + " " + path
		}
		imports = append(imports, path)
	}
	sort.Strings(imports)
	for _, decl := range f.Decls {
		var doc *ast.CommentGroup
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok == token.IMPORT {
				continue
			}
			doc, d.Doc = d.Doc, nil
		case *ast.FuncDecl:
			doc, d.Doc = d.Doc, nil
		}
		var buf bytes.Buffer
		require.NoError(t, format.Node(&buf, fset, decl))
		decls = append(decls, doc.Text()+buf.String())
	}
	return append(imports, decls...)
}
