package gen

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// Helper functions
// =============================================================================

var titleCaser = cases.Title(language.Und, cases.NoLower)

// pascal capitalizes the first letter of a string and keeps the rest.
func pascal(s string) string {
	if s == "" {
		return s
	}
	_, n := utf8.DecodeRuneInString(s)
	return titleCaser.String(s[:n]) + s[n:]
}

// lowerCamel lowers the leading run of upper case letters of an identifier.
// A run followed by a lower case letter keeps its last letter, so
// "HTTPServer" becomes "httpServer" and "ID" becomes "id".
func lowerCamel(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n > 1 && n < len(runes) && unicode.IsLetter(runes[n]):
		n--
	}
	return strings.ToLower(string(runes[:n])) + string(runes[n:])
}

// paramName returns the parameter name of a setter for the given field.
// It falls back to "v" when the lower camel name would shadow something the
// setter body needs: the receiver, a keyword, a predeclared identifier or
// an imported package.
func paramName(field string, imports map[string]string) string {
	name := lowerCamel(field)
	switch {
	case name == receiver, name == "_", strings.HasPrefix(name, "_"):
		return "v"
	case token.IsKeyword(name), types.Universe.Lookup(name) != nil:
		return "v"
	}
	if _, ok := imports[name]; ok {
		return "v"
	}
	if _, ok := reserved[name]; ok {
		return "v"
	}
	return name
}

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// =============================================================================
// Global variables
// =============================================================================

// reserved are the package names used by the generated files.
var reserved = names(
	"buildergen",
	"option",
	"slices",
)
