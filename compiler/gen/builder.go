package gen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

// genBuilder adds the builder of the type to the file.
func genBuilder(f *jen.File, t *Type) {
	genStruct(f, t)
	genFactory(f, t)
	if t.featureEnabled(FeatureConstructor) {
		genConstructor(f, t)
	}
	for _, fd := range t.Fields {
		if fd.Setter() != "" {
			genSetter(f, fd)
		}
		if fd.EachSetter() != "" {
			genEachSetter(f, fd)
		}
	}
	genBuild(f, t)
	if t.featureEnabled(FeatureBuildX) {
		genBuildX(f, t)
	}
	if t.featureEnabled(FeatureReset) {
		genReset(f, t)
	}
}

// typeParams returns the type parameter declarations of the record.
func (t *Type) typeParams() []jen.Code {
	params := make([]jen.Code, 0, len(t.TypeParams))
	for _, tp := range t.TypeParams {
		c, err := t.typeCode(tp.Constraint, true)
		if err != nil {
			panic(fmt.Sprintf("buildergen: unchecked constraint: %v", err))
		}
		params = append(params, jen.Id(tp.Name).Add(c))
	}
	return params
}

// typeArgs returns the type parameter names of the record as arguments.
func (t *Type) typeArgs() []jen.Code {
	args := make([]jen.Code, 0, len(t.TypeParams))
	for _, tp := range t.TypeParams {
		args = append(args, jen.Id(tp.Name))
	}
	return args
}

// recordType returns the record type, instantiated with its parameters.
func (t *Type) recordType() *jen.Statement {
	if !t.Generic() {
		return jen.Id(t.Name)
	}
	return jen.Id(t.Name).Types(t.typeArgs()...)
}

// builderType returns the builder type, instantiated with the parameters
// of the record.
func (t *Type) builderType() *jen.Statement {
	if !t.Generic() {
		return jen.Id(t.BuilderName())
	}
	return jen.Id(t.BuilderName()).Types(t.typeArgs()...)
}

// recv returns the receiver of builder methods.
func (t *Type) recv() *jen.Statement {
	return jen.Id(t.ids.recv).Op("*").Add(t.builderType())
}

// param returns the parameter name of a setter, avoiding the receiver and
// the type parameters of the record.
func (t *Type) param(setter string) string {
	name := paramName(setter, t.rec.Imports)
	for name == t.ids.recv || t.isTypeParam(name) {
		name = "_" + name
	}
	return name
}

func (t *Type) isTypeParam(name string) bool {
	for _, tp := range t.TypeParams {
		if tp.Name == name {
			return true
		}
	}
	return false
}

// slotType returns the type of the builder slot of the field.
func (f *Field) slotType() *jen.Statement {
	return jen.Qual(OptionPkg, "Option").Types(f.typ.mustTypeCode(f.EffectiveType))
}

// docLines copies the doc comment of the field below a generated doc comment.
func (f *Field) docLines(file *jen.File) {
	for _, line := range strings.Split(f.Comment(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			file.Comment(line)
		}
	}
}

// genStruct generates the builder type holding one slot per field.
func genStruct(f *jen.File, t *Type) {
	f.Commentf("%s is a builder for %s. The zero value is an empty builder.", t.BuilderName(), t.Name)
	f.Comment("It is not safe for concurrent use.")
	slots := make([]jen.Code, 0, len(t.Fields))
	for _, fd := range t.Fields {
		slots = append(slots, jen.Id(fd.Slot()).Add(fd.slotType()))
	}
	decl := jen.Type().Id(t.BuilderName())
	if t.Generic() {
		decl.Types(t.typeParams()...)
	}
	f.Add(decl.Struct(slots...))
}

// genFactory generates the Builder method of the record.
func genFactory(f *jen.File, t *Type) {
	f.Commentf("%s returns a new empty %s.", factoryName, t.BuilderName())
	f.Func().Params(t.recordType()).Id(factoryName).Params().Op("*").Add(t.builderType()).Block(
		jen.Return(jen.Op("&").Add(t.builderType()).Values()),
	)
}

// genConstructor generates a package-level function returning an empty
// builder.
func genConstructor(f *jen.File, t *Type) {
	f.Commentf("%s returns a new empty %s.", t.ConstructorName(), t.BuilderName())
	fn := f.Func().Id(t.ConstructorName())
	if t.Generic() {
		fn.Types(t.typeParams()...)
	}
	fn.Params().Op("*").Add(t.builderType()).Block(
		jen.Return(jen.Op("&").Add(t.builderType()).Values()),
	)
}

// genSetter generates the replacing setter of a field. A slice that an
// appending setter may grow is stored with its capacity clipped, so appends
// never write into the caller's array.
func genSetter(f *jen.File, fd *Field) {
	t := fd.typ
	param := t.param(fd.Setter())
	value := jen.Id(param)
	if fd.EachSetter() != "" {
		value = jen.Qual("slices", "Clip").Call(jen.Id(param))
	}
	f.Commentf("%s sets the %s field of the %s.", fd.Setter(), fd.Name, t.Name)
	fd.docLines(f)
	f.Func().Params(t.recv()).Id(fd.Setter()).
		Params(jen.Id(param).Add(t.mustTypeCode(fd.EffectiveType))).
		Op("*").Add(t.builderType()).
		Block(
			jen.Id(t.ids.recv).Dot(fd.Slot()).Op("=").Qual(OptionPkg, "Some").Call(value),
			jen.Return(jen.Id(t.ids.recv)),
		)
}

// genEachSetter generates the appending setter of a slice field.
func genEachSetter(f *jen.File, fd *Field) {
	t := fd.typ
	param := t.param(fd.EachSetter())
	f.Commentf("%s appends a value to the %s field of the %s.", fd.EachSetter(), fd.Name, t.Name)
	f.Func().Params(t.recv()).Id(fd.EachSetter()).
		Params(jen.Id(param).Add(t.mustTypeCode(fd.ElemType()))).
		Op("*").Add(t.builderType()).
		Block(
			jen.Id(t.ids.recv).Dot(fd.Slot()).Op("=").Qual(OptionPkg, "Some").Call(
				jen.Append(jen.Id(t.ids.recv).Dot(fd.Slot()).Dot("OrZero").Call(), jen.Id(param)),
			),
			jen.Return(jen.Id(t.ids.recv)),
		)
}

// genBuild generates the terminal Build method. Every slot is taken in
// declaration order, so a failed Build leaves the slots after the first
// unset required field untouched.
func genBuild(f *jen.File, t *Type) {
	var (
		b  = t.ids.recv
		r  = t.ids.result
		ok = t.ids.ok
	)
	body := []jen.Code{jen.Var().Id(r).Add(t.recordType())}
	if t.HasRequired() {
		body = append(body, jen.Var().Id(ok).Bool())
	}
	for _, fd := range t.Fields {
		take := jen.Id(b).Dot(fd.Slot()).Dot("Take").Call()
		if fd.Optional {
			body = append(body, jen.Id(r).Dot(fd.Name).Op("=").Add(take))
			continue
		}
		body = append(body, jen.If(
			jen.List(jen.Id(r).Dot(fd.Name), jen.Id(ok)).Op("=").Add(take).Dot("Get").Call(),
			jen.Op("!").Id(ok),
		).Block(
			jen.Return(t.recordType().Values(), jen.Qual(RuntimePkg, "NewNotSetError").Call(jen.Lit(fd.Name))),
		))
	}
	body = append(body, jen.Return(jen.Id(r), jen.Nil()))
	f.Commentf("Build returns the %s holding the values of the builder.", t.Name)
	f.Comment("Every field is cleared as it is read. Build fails with a")
	f.Comment("*buildergen.NotSetError naming the first required field that was not set.")
	f.Func().Params(t.recv()).Id("Build").Params().Params(t.recordType(), jen.Error()).Block(body...)
}

// genBuildX generates BuildX, the panicking variant of Build.
func genBuildX(f *jen.File, t *Type) {
	r, err := t.ids.result, t.ids.err
	f.Comment("BuildX is like Build, but panics if an error occurs.")
	f.Func().Params(t.recv()).Id("BuildX").Params().Add(t.recordType()).Block(
		jen.List(jen.Id(r), jen.Id(err)).Op(":=").Id(t.ids.recv).Dot("Build").Call(),
		jen.If(jen.Id(err).Op("!=").Nil()).Block(jen.Panic(jen.Id(err))),
		jen.Return(jen.Id(r)),
	)
}

// genReset generates Reset, which empties every slot of the builder.
func genReset(f *jen.File, t *Type) {
	body := make([]jen.Code, 0, len(t.Fields)+1)
	for _, fd := range t.Fields {
		body = append(body, jen.Id(t.ids.recv).Dot(fd.Slot()).Dot("Clear").Call())
	}
	body = append(body, jen.Return(jen.Id(t.ids.recv)))
	f.Comment("Reset empties every field of the builder.")
	f.Func().Params(t.recv()).Id("Reset").Params().Op("*").Add(t.builderType()).Block(body...)
}
