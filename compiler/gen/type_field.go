package gen

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/buildergen/compiler/load"
)

// =============================================================================
// Field classification
// =============================================================================

// newField classifies a raw field.
func (t *Type) newField(fd *load.Field) (*Field, error) {
	f := &Field{
		typ:           t,
		def:           fd,
		Name:          fd.Name,
		DeclaredType:  fd.Type,
		EffectiveType: fd.Type,
	}
	if inner, ok := optionalInner(fd.Type); ok {
		f.Optional = true
		f.EffectiveType = inner
	}
	if _, err := t.typeCode(f.DeclaredType, false); err != nil {
		return nil, NewRecordError(t.Name, f.Name, "", err).At(fd.Pos)
	}
	attr, err := parseAttr(fd)
	if err != nil {
		return nil, NewRecordError(t.Name, f.Name, "", err).At(fd.Pos)
	}
	if attr != nil && attr.Each != "" {
		if _, ok := sliceElem(f.EffectiveType); !ok {
			return nil, NewRecordError(t.Name, f.Name, fmt.Sprintf("each setter %s requires a slice field", attr.Each), nil).At(fd.Pos)
		}
	}
	f.Attr = attr
	return f, nil
}

// optionalInner matches the optional-wrapper pattern: a generic
// instantiation with exactly one type argument whose final identifier is
// Option. The match is by spelling only.
func optionalInner(expr ast.Expr) (ast.Expr, bool) {
	ix, ok := expr.(*ast.IndexExpr)
	if !ok {
		return nil, false
	}
	switch x := ix.X.(type) {
	case *ast.Ident:
		ok = x.Name == optionalWrapper
	case *ast.SelectorExpr:
		ok = x.Sel.Name == optionalWrapper
	default:
		ok = false
	}
	if !ok {
		return nil, false
	}
	return ix.Index, true
}

// sliceElem returns the element type of a slice type expression.
func sliceElem(expr ast.Expr) (ast.Expr, bool) {
	if p, ok := expr.(*ast.ParenExpr); ok {
		return sliceElem(p.X)
	}
	at, ok := expr.(*ast.ArrayType)
	if !ok || at.Len != nil {
		return nil, false
	}
	return at.Elt, true
}

// parseAttr parses the builder tag of a field. The tag holds comma
// separated items, "each=name" or "each".
func parseAttr(fd *load.Field) (*Attr, error) {
	tag, ok := fd.Lookup(tagKey)
	if !ok {
		return nil, nil
	}
	attr := &Attr{}
	if tag == "" {
		return attr, nil
	}
	for _, item := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(item), "=")
		if key != "each" {
			return nil, fmt.Errorf(`expected builder:"each=..." but got builder:%q`, tag)
		}
		if !hasValue {
			value = inflect.Singularize(fd.Name)
		}
		if !token.IsIdentifier(value) {
			return nil, fmt.Errorf("each setter name %q is not a valid identifier", value)
		}
		attr.Each = value
	}
	return attr, nil
}

// =============================================================================
// Field methods
// =============================================================================

// Slot returns the name of the builder struct field holding the value.
func (f *Field) Slot() string {
	return f.slot
}

// Setter returns the name of the replacing setter, or an empty string when
// the appending setter takes the field name.
func (f *Field) Setter() string {
	if f.Attr != nil && f.Attr.Each == f.Name {
		return ""
	}
	return f.Name
}

// EachSetter returns the name of the appending setter, or an empty string.
func (f *Field) EachSetter() string {
	if f.Attr == nil {
		return ""
	}
	return f.Attr.Each
}

// ElemType returns the element type of a field with an appending setter.
func (f *Field) ElemType() ast.Expr {
	elem, _ := sliceElem(f.EffectiveType)
	return elem
}

// Comment returns the doc comment of the field in the record.
func (f *Field) Comment() string {
	return f.def.Comment
}

// Type returns the record type holding the field.
func (f *Field) Type() *Type {
	return f.typ
}
