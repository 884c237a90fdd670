// Package load finds struct declarations annotated for builder generation
// and turns them into Records.
//
// A declaration is annotated when its doc comment holds the directive line
//
//	//buildergen:builder
//
// or when its name is listed in Config.Types. Only named struct types with
// at least one named field are accepted; every other shape is reported as an
// *UnsupportedError and never causes a panic.
//
// Loading is purely syntactic. Field types are kept as ast.Expr values and
// package qualifiers are resolved through the file's import declarations
// only, without type checking.
package load
