package gen

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/syssam/buildergen/compiler/load"
)

// The following types and their exported methods are used by the codegen
// to generate the builders.
type (
	// Type represents one annotated record and the information needed to
	// generate its builder.
	Type struct {
		*Config
		rec *load.Record
		// Name holds the record type name.
		Name string
		// TypeParams holds the type parameters of a generic record.
		TypeParams []*load.TypeParam
		// Fields holds the classified fields, in declaration order.
		Fields []*Field
		// ids holds the identifiers local to the generated methods.
		ids idents
	}

	// idents are the receiver and local variable names of the builder
	// methods.
	idents struct {
		recv, result, ok, err string
	}

	// Field is the classified descriptor of one record field.
	Field struct {
		typ *Type
		def *load.Field
		// Name is the Go name of the field.
		Name string
		// DeclaredType is the field type as written in the record.
		DeclaredType ast.Expr
		// EffectiveType is the type stored by the builder: DeclaredType with
		// one optional wrapper stripped.
		EffectiveType ast.Expr
		// Optional reports whether DeclaredType matched the optional wrapper.
		Optional bool
		// Attr holds the parsed builder tag, nil if the field has none.
		Attr *Attr
		// slot is the name of the builder struct field.
		slot string
	}

	// Attr is the per-field configuration read from the "builder" struct tag.
	Attr struct {
		// Each names an appending setter for a slice field.
		Each string
	}
)

const (
	// tagKey is the struct tag key holding field attributes.
	tagKey = "builder"
	// optionalWrapper is the identifier of the optional-wrapper pattern.
	optionalWrapper = "Option"
	// factoryName is the method of the record returning a new builder.
	factoryName = "Builder"
	// receiver is the preferred receiver name of builder methods.
	receiver = "b"
)

// NewType creates a new type and classifies its fields from the given record.
func NewType(c *Config, r *load.Record) (*Type, error) {
	t := &Type{
		Config:     c,
		rec:        r,
		Name:       r.Name,
		TypeParams: r.TypeParams,
	}
	for _, tp := range r.TypeParams {
		if _, err := t.typeCode(tp.Constraint, true); err != nil {
			return nil, NewRecordError(t.Name, "", "type parameter "+tp.Name, err).At(r.Pos)
		}
	}
	for _, fd := range r.Fields {
		f, err := t.newField(fd)
		if err != nil {
			return nil, err
		}
		t.Fields = append(t.Fields, f)
	}
	if err := t.checkNames(); err != nil {
		return nil, err
	}
	t.assignSlots()
	t.assignIdents()
	return t, nil
}

// checkNames reports setter names colliding with each other or with the
// generated methods.
func (t *Type) checkNames() error {
	if f := t.field(factoryName); f != nil {
		return NewRecordError(t.Name, f.Name, "field name collides with the generated "+factoryName+" method", nil).At(f.def.Pos)
	}
	methods := make(map[string]string)
	for _, m := range t.methods() {
		methods[m] = "generated method"
	}
	for _, f := range t.Fields {
		for _, name := range []string{f.Setter(), f.EachSetter()} {
			if name == "" {
				continue
			}
			if owner, ok := methods[name]; ok {
				return NewRecordError(t.Name, f.Name, fmt.Sprintf("setter %s collides with %s", name, owner), nil).At(f.def.Pos)
			}
			methods[name] = "setter of field " + f.Name
		}
	}
	return nil
}

// methods returns the builder methods that are not setters.
func (t *Type) methods() []string {
	m := []string{"Build"}
	if t.featureEnabled(FeatureBuildX) {
		m = append(m, "BuildX")
	}
	if t.featureEnabled(FeatureReset) {
		m = append(m, "Reset")
	}
	return m
}

// assignSlots names the builder struct fields. A slot is the lower camel
// form of the field name, prefixed with "_" while it collides with a method,
// a keyword or an earlier slot.
func (t *Type) assignSlots() {
	taken := make(map[string]bool)
	for _, m := range t.methods() {
		taken[m] = true
	}
	for _, f := range t.Fields {
		taken[f.Setter()] = true
		taken[f.EachSetter()] = true
	}
	for _, f := range t.Fields {
		slot := lowerCamel(f.Name)
		for taken[slot] || token.IsKeyword(slot) {
			slot = "_" + slot
		}
		taken[slot] = true
		f.slot = slot
	}
}

// assignIdents names the receiver and the Build and BuildX locals. A name
// is prefixed with "_" while it would shadow the record, one of its type
// parameters, a package used by the generated file or an earlier name.
func (t *Type) assignIdents() {
	taken := names(t.Name)
	for name := range reserved {
		taken[name] = struct{}{}
	}
	for _, tp := range t.TypeParams {
		taken[tp.Name] = struct{}{}
	}
	fresh := func(name string) string {
		for {
			if _, ok := taken[name]; !ok {
				break
			}
			name = "_" + name
		}
		taken[name] = struct{}{}
		return name
	}
	t.ids = idents{
		recv:   fresh(receiver),
		result: fresh("r"),
		ok:     fresh("ok"),
		err:    fresh("err"),
	}
}

func (t *Type) field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Record returns the loaded record of the type.
func (t *Type) Record() *load.Record {
	return t.rec
}

// File returns the path of the source file declaring the type.
func (t *Type) File() string {
	return t.rec.File
}

// BuilderName returns the name of the builder type.
func (t *Type) BuilderName() string {
	return t.Name + t.Suffix
}

// ConstructorName returns the name of the builder constructor function.
// Its exportedness follows the record's.
func (t *Type) ConstructorName() string {
	if token.IsExported(t.Name) {
		return "New" + t.BuilderName()
	}
	return "new" + pascal(t.BuilderName())
}

// Generic reports whether the record declares type parameters.
func (t *Type) Generic() bool {
	return len(t.TypeParams) > 0
}

// HasRequired reports whether any field must be set before Build.
func (t *Type) HasRequired() bool {
	for _, f := range t.Fields {
		if !f.Optional {
			return true
		}
	}
	return false
}
