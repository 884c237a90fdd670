package load

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"maps"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// DefaultDirective is the comment directive marking a struct for builder
// generation, without the leading "//".
const DefaultDirective = "buildergen:builder"

// Config configures record loading.
type Config struct {
	// Directive marks annotated declarations. Defaults to DefaultDirective.
	Directive string
	// Types selects declarations by name instead of by directive.
	Types []string
	// BuildFlags are passed to the go tool when loading packages.
	BuildFlags []string
	// Dir is the working directory of the go tool. Empty means the current
	// directory.
	Dir string
}

// Load loads the packages matching the patterns and returns their annotated
// records, in package, file and declaration order.
func (c *Config) Load(ctx context.Context, patterns ...string) ([]*Record, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedImports | packages.NeedSyntax,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
		Fset:       token.NewFileSet(),
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages %s: %w", strings.Join(patterns, " "), err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("load package %s: %w", pkg.PkgPath, pkg.Errors[0])
		}
	}
	s := c.newScanner()
	if s.names, err = c.importNames(ctx, pkgs); err != nil {
		return nil, err
	}
	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			s.scan(pkg.Fset, f, pkg.PkgPath)
		}
	}
	return s.result()
}

// importNames returns the declared names of the packages imported by pkgs,
// keyed by import path. Imports loaded without a name are listed again;
// those that still fail are left out and get a guessed name.
func (c *Config) importNames(ctx context.Context, pkgs []*packages.Package) (map[string]string, error) {
	var (
		names   = make(map[string]string)
		missing = make(map[string][]string)
	)
	for _, pkg := range pkgs {
		for p, imp := range pkg.Imports {
			switch {
			case p == "C":
			case imp.Name != "":
				names[p] = imp.Name
			default:
				missing[imp.ID] = append(missing[imp.ID], p)
			}
		}
	}
	if len(missing) == 0 {
		return names, nil
	}
	deps, err := packages.Load(&packages.Config{
		Context:    ctx,
		Mode:       packages.NeedName,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
	}, slices.Sorted(maps.Keys(missing))...)
	if err != nil {
		return nil, fmt.Errorf("load imports: %w", err)
	}
	for _, dep := range deps {
		if dep.Name == "" || len(dep.Errors) > 0 {
			continue
		}
		for _, p := range missing[dep.ID] {
			names[p] = dep.Name
		}
	}
	return names, nil
}

// PackageDirs returns the directories of the packages matching the
// patterns, without parsing their files.
func (c *Config) PackageDirs(ctx context.Context, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	pkgs, err := packages.Load(&packages.Config{
		Context:    ctx,
		Mode:       packages.NeedName | packages.NeedFiles,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages %s: %w", strings.Join(patterns, " "), err)
	}
	var dirs []string
	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			if dir := filepath.Dir(f); !slices.Contains(dirs, dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs, nil
}

// ParseFile parses a single Go source file and returns its annotated records.
// If src != nil, ParseFile parses the source from src and the filename is
// only used when recording position information, as in parser.ParseFile.
func (c *Config) ParseFile(fset *token.FileSet, filename string, src any) ([]*Record, error) {
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return c.FromFiles(fset, "", f)
}

// FromFiles extracts the annotated records of already parsed files. The
// files must be parsed with comments.
func (c *Config) FromFiles(fset *token.FileSet, pkgPath string, files ...*ast.File) ([]*Record, error) {
	s := c.newScanner()
	for _, f := range files {
		s.scan(fset, f, pkgPath)
	}
	return s.result()
}

// scanner accumulates records and shape errors across files.
type scanner struct {
	directive string
	names     map[string]string
	types     []string
	found     map[string]bool
	records   []*Record
	errs      []error
}

func (c *Config) newScanner() *scanner {
	directive := c.Directive
	if directive == "" {
		directive = DefaultDirective
	}
	return &scanner{
		directive: "//" + strings.TrimPrefix(directive, "//"),
		types:     c.Types,
		found:     make(map[string]bool),
	}
}

func (s *scanner) scan(fset *token.FileSet, f *ast.File, pkgPath string) {
	if ast.IsGenerated(f) {
		return
	}
	var imports *importTable
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if !s.selected(gd, ts) {
				continue
			}
			s.found[ts.Name.Name] = true
			if imports == nil {
				imports = fileImports(f, s.names)
			}
			r, err := newRecord(fset, f, ts, pkgPath, imports)
			if err != nil {
				s.errs = append(s.errs, err)
				continue
			}
			s.records = append(s.records, r)
		}
	}
}

// selected reports whether the type spec should get a builder.
func (s *scanner) selected(gd *ast.GenDecl, ts *ast.TypeSpec) bool {
	if len(s.types) > 0 {
		return slices.Contains(s.types, ts.Name.Name)
	}
	if s.annotated(ts.Doc) {
		return true
	}
	// The declaration doc belongs to the spec only for ungrouped declarations.
	return !gd.Lparen.IsValid() && s.annotated(gd.Doc)
}

func (s *scanner) annotated(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimRight(c.Text, " \t") == s.directive {
			return true
		}
	}
	return false
}

func (s *scanner) result() ([]*Record, error) {
	for _, name := range s.types {
		if !s.found[name] {
			s.errs = append(s.errs, fmt.Errorf("buildergen: type %s not found", name))
		}
	}
	if len(s.errs) > 0 {
		return nil, errors.Join(s.errs...)
	}
	return s.records, nil
}

// newRecord validates the shape of a type spec and converts it to a Record.
func newRecord(fset *token.FileSet, f *ast.File, ts *ast.TypeSpec, pkgPath string, imports *importTable) (*Record, error) {
	name := ts.Name.Name
	pos := fset.Position(ts.Name.Pos())
	if ts.Assign.IsValid() {
		return nil, unsupported(pos, name, "", "alias declarations cannot have builders")
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, unsupported(pos, name, "", "only struct types can have builders, got "+describe(ts.Type))
	}
	if st.Fields == nil || len(st.Fields.List) == 0 {
		return nil, unsupported(pos, name, "", "struct has no fields")
	}
	if imports.dot {
		return nil, unsupported(pos, name, "", "files with dot imports are not supported")
	}
	r := &Record{
		Name:    name,
		Pos:     pos,
		File:    fset.Position(f.Package).Filename,
		PkgName: f.Name.Name,
		PkgPath: pkgPath,
		Imports: imports.paths,
		aliases: imports.aliases,
	}
	if ts.TypeParams != nil {
		for _, tp := range ts.TypeParams.List {
			for _, n := range tp.Names {
				r.TypeParams = append(r.TypeParams, &TypeParam{Name: n.Name, Constraint: tp.Type})
			}
		}
	}
	for _, fd := range st.Fields.List {
		if len(fd.Names) == 0 {
			return nil, unsupported(fset.Position(fd.Pos()), name, describe(fd.Type), "embedded fields cannot be set by a builder")
		}
		tag, err := fieldTag(fd)
		if err != nil {
			return nil, unsupported(fset.Position(fd.Tag.Pos()), name, fd.Names[0].Name, err.Error())
		}
		var comment string
		if fd.Doc != nil {
			comment = strings.TrimSpace(fd.Doc.Text())
		}
		for _, n := range fd.Names {
			if n.Name == "_" {
				return nil, unsupported(fset.Position(n.Pos()), name, "_", "blank fields cannot be set by a builder")
			}
			r.Fields = append(r.Fields, &Field{
				Name:    n.Name,
				Type:    fd.Type,
				Tag:     tag,
				Comment: comment,
				Pos:     fset.Position(n.Pos()),
			})
		}
	}
	return r, nil
}

func fieldTag(fd *ast.Field) (string, error) {
	if fd.Tag == nil {
		return "", nil
	}
	tag, err := strconv.Unquote(fd.Tag.Value)
	if err != nil {
		return "", fmt.Errorf("malformed struct tag %s", fd.Tag.Value)
	}
	return tag, nil
}

// Lookup returns the value of key in the struct tag of the field.
func (f *Field) Lookup(key string) (string, bool) {
	return reflect.StructTag(f.Tag).Lookup(key)
}

// describe names the kind of a type expression for error messages.
func describe(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return describe(x.X) + "." + x.Sel.Name
	case *ast.StarExpr:
		return "*" + describe(x.X)
	case *ast.IndexExpr:
		return describe(x.X) + "[...]"
	case *ast.IndexListExpr:
		return describe(x.X) + "[...]"
	case *ast.InterfaceType:
		return "interface type"
	case *ast.StructType:
		return "struct type"
	case *ast.FuncType:
		return "function type"
	case *ast.ChanType:
		return "channel type"
	case *ast.MapType:
		return "map type"
	case *ast.ArrayType:
		if x.Len == nil {
			return "slice type"
		}
		return "array type"
	case *ast.ParenExpr:
		return describe(x.X)
	default:
		return "unknown type"
	}
}
