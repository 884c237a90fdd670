package load

import (
	"go/ast"
	"go/token"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Record is an annotated struct declaration loaded from a user package.
type Record struct {
	// Name of the declared type.
	Name string
	// TypeParams holds the declared type parameters, in order.
	TypeParams []*TypeParam
	// Fields holds one entry per declared field name, in declaration order.
	Fields []*Field
	// Pos is the position of the type name.
	Pos token.Position
	// File is the path of the source file holding the declaration.
	File string
	// PkgName and PkgPath identify the package of the declaration.
	// PkgPath is empty when the file was parsed outside a module.
	PkgName string
	PkgPath string
	// Imports maps the local package names of the source file to their
	// import paths.
	Imports map[string]string

	aliases map[string]bool
}

// TypeParam is a type parameter of a generic record.
type TypeParam struct {
	Name       string
	Constraint ast.Expr
}

// Field is a raw struct field, unclassified.
type Field struct {
	Name string
	// Type is the field's type expression as written.
	Type ast.Expr
	// Tag is the unquoted struct tag, or empty.
	Tag string
	// Comment is the text of the field's doc comment, or empty.
	Comment string
	Pos     token.Position
}

// ImportPath returns the import path bound to the local package name.
func (r *Record) ImportPath(name string) (string, bool) {
	p, ok := r.Imports[name]
	return p, ok
}

// Aliased reports whether the local name was given explicitly in the
// import declaration.
func (r *Record) Aliased(name string) bool {
	return r.aliases[name]
}

// importTable is the resolved import declarations of one file.
type importTable struct {
	paths   map[string]string
	aliases map[string]bool
	dot     bool
}

// fileImports resolves the import declarations of a file. Unaliased imports
// take their name from names, keyed by import path, when the package was
// loaded. Otherwise the name is guessed from the path, and the guess is
// replaced by the last path element when only the latter qualifies
// identifiers in the file, as "k8s.io/api/core/v1" does with v1.
func fileImports(f *ast.File, names map[string]string) *importTable {
	t := &importTable{
		paths:   make(map[string]string, len(f.Imports)),
		aliases: make(map[string]bool),
	}
	guessed := make(map[string]string)
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		if spec.Name != nil {
			switch spec.Name.Name {
			case "_":
			case ".":
				t.dot = true
			default:
				t.paths[spec.Name.Name] = p
				t.aliases[spec.Name.Name] = true
			}
			continue
		}
		name, ok := names[p]
		if !ok {
			name = ImportName(p)
			guessed[name] = p
		}
		t.paths[name] = p
	}
	if len(guessed) == 0 {
		return t
	}
	used := qualifiers(f)
	for name, p := range guessed {
		last := path.Base(p)
		if used[name] || !used[last] || last == name {
			continue
		}
		if _, taken := t.paths[last]; taken {
			continue
		}
		delete(t.paths, name)
		t.paths[last] = p
	}
	return t
}

// qualifiers returns the identifiers used on the left of a selector in f.
func qualifiers(f *ast.File) map[string]bool {
	used := make(map[string]bool)
	ast.Inspect(f, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				used[id.Name] = true
			}
		}
		return true
	})
	return used
}

var (
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
	gopkgVersion = regexp.MustCompile(`\.v[0-9]+$`)
)

// ImportName guesses the package name of an import path the way the go
// tool conventions suggest: the last element, skipping a major version
// suffix and stripping "go-" prefixes and "-go" suffixes.
func ImportName(importPath string) string {
	elems := strings.Split(importPath, "/")
	name := elems[len(elems)-1]
	if majorVersion.MatchString(name) && len(elems) > 1 {
		name = elems[len(elems)-2]
	}
	name = gopkgVersion.ReplaceAllString(name, "")
	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, "-go")
	name = strings.TrimSuffix(name, ".go")
	name = strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return -1
		}
		return r
	}, name)
	if name == "" {
		return path.Base(importPath)
	}
	return name
}
