package gen

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/dave/jennifer/jen"
)

// typeCode converts a type expression of the record's source file to
// jennifer code. Package selectors are resolved through the import table of
// the file so the generated file imports the same packages. Union and
// approximation elements are accepted only in constraint position.
func (t *Type) typeCode(expr ast.Expr, constraint bool) (*jen.Statement, error) {
	switch x := expr.(type) {
	case *ast.Ident:
		return jen.Id(x.Name), nil
	case *ast.SelectorExpr:
		return t.qualified(x)
	case *ast.StarExpr:
		inner, err := t.typeCode(x.X, false)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(inner), nil
	case *ast.ParenExpr:
		inner, err := t.typeCode(x.X, constraint)
		if err != nil {
			return nil, err
		}
		return jen.Parens(inner), nil
	case *ast.ArrayType:
		elem, err := t.typeCode(x.Elt, false)
		if err != nil {
			return nil, err
		}
		if x.Len == nil {
			return jen.Index().Add(elem), nil
		}
		n, err := t.constCode(x.Len)
		if err != nil {
			return nil, err
		}
		return jen.Index(n).Add(elem), nil
	case *ast.MapType:
		key, err := t.typeCode(x.Key, false)
		if err != nil {
			return nil, err
		}
		value, err := t.typeCode(x.Value, false)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(value), nil
	case *ast.IndexExpr:
		return t.instance(x.X, x.Index)
	case *ast.IndexListExpr:
		return t.instance(x.X, x.Indices...)
	case *ast.InterfaceType:
		return t.interfaceCode(x, constraint)
	case *ast.StructType:
		if x.Fields != nil && len(x.Fields.List) > 0 {
			return nil, fmt.Errorf("struct literal types with fields are not supported")
		}
		return jen.Struct(), nil
	case *ast.UnaryExpr:
		if !constraint || x.Op != token.TILDE {
			break
		}
		inner, err := t.typeCode(x.X, false)
		if err != nil {
			return nil, err
		}
		return jen.Op("~").Add(inner), nil
	case *ast.BinaryExpr:
		if !constraint || x.Op != token.OR {
			break
		}
		left, err := t.typeCode(x.X, true)
		if err != nil {
			return nil, err
		}
		right, err := t.typeCode(x.Y, true)
		if err != nil {
			return nil, err
		}
		return jen.Union(left, right), nil
	case *ast.FuncType:
		return nil, fmt.Errorf("function types are not supported")
	case *ast.ChanType:
		return nil, fmt.Errorf("channel types are not supported")
	}
	return nil, fmt.Errorf("unsupported type expression %T", expr)
}

// mustTypeCode is typeCode for expressions checked by NewType.
func (t *Type) mustTypeCode(expr ast.Expr) *jen.Statement {
	c, err := t.typeCode(expr, false)
	if err != nil {
		panic(fmt.Sprintf("buildergen: unchecked type expression: %v", err))
	}
	return c
}

func (t *Type) qualified(x *ast.SelectorExpr) (*jen.Statement, error) {
	pkg, ok := x.X.(*ast.Ident)
	if !ok {
		return nil, fmt.Errorf("unexpected selector on %T", x.X)
	}
	path, ok := t.rec.ImportPath(pkg.Name)
	if !ok {
		return nil, fmt.Errorf("package %s is not imported", pkg.Name)
	}
	return jen.Qual(path, x.Sel.Name), nil
}

func (t *Type) instance(generic ast.Expr, args ...ast.Expr) (*jen.Statement, error) {
	base, err := t.typeCode(generic, false)
	if err != nil {
		return nil, err
	}
	codes := make([]jen.Code, 0, len(args))
	for _, a := range args {
		c, err := t.typeCode(a, false)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return base.Types(codes...), nil
}

// interfaceCode accepts the empty interface, and interfaces made of type
// elements in constraint position.
func (t *Type) interfaceCode(x *ast.InterfaceType, constraint bool) (*jen.Statement, error) {
	if x.Methods == nil || len(x.Methods.List) == 0 {
		return jen.Interface(), nil
	}
	if !constraint {
		return nil, fmt.Errorf("interface literal types with methods are not supported")
	}
	elems := make([]jen.Code, 0, len(x.Methods.List))
	for _, m := range x.Methods.List {
		if len(m.Names) > 0 {
			return nil, fmt.Errorf("constraints with methods are not supported")
		}
		c, err := t.typeCode(m.Type, true)
		if err != nil {
			return nil, err
		}
		elems = append(elems, c)
	}
	return jen.Interface(elems...), nil
}

// constCode converts an array length expression.
func (t *Type) constCode(expr ast.Expr) (*jen.Statement, error) {
	switch x := expr.(type) {
	case *ast.BasicLit:
		return jen.Id(x.Value), nil
	case *ast.Ident:
		return jen.Id(x.Name), nil
	case *ast.SelectorExpr:
		return t.qualified(x)
	case *ast.ParenExpr:
		inner, err := t.constCode(x.X)
		if err != nil {
			return nil, err
		}
		return jen.Parens(inner), nil
	case *ast.UnaryExpr:
		inner, err := t.constCode(x.X)
		if err != nil {
			return nil, err
		}
		return jen.Op(x.Op.String()).Add(inner), nil
	case *ast.BinaryExpr:
		left, err := t.constCode(x.X)
		if err != nil {
			return nil, err
		}
		right, err := t.constCode(x.Y)
		if err != nil {
			return nil, err
		}
		return left.Op(x.Op.String()).Add(right), nil
	case *ast.Ellipsis:
		return nil, fmt.Errorf("array length must be explicit")
	}
	return nil, fmt.Errorf("unsupported array length %T", expr)
}
