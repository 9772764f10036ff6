package model

import "strings"

// ImportKind identifies the syntactic shape of an import declaration.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides human-readable
// output for reports and logs.
type ImportKind int

const (
	// KindNamed is a named import list: import { a, b as c } from "mod".
	KindNamed ImportKind = iota

	// KindDefault is a default import: import a from "mod".
	KindDefault

	// KindNamespace is a namespace import: import * as ns from "mod".
	KindNamespace
)

// String returns a human-readable representation of the import kind.
func (k ImportKind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindDefault:
		return "default"
	case KindNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// SourceFile is one file of the corpus. It is read exactly once and is
// immutable for the duration of its analysis.
type SourceFile struct {
	// Path is the file path relative to the corpus root.
	Path string

	// Content is the full decoded text of the file.
	Content string
}

// Line returns the 1-based line with the given number, or the empty string
// if the line number is out of range.
func (f *SourceFile) Line(n int) string {
	lines := strings.Split(f.Content, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// ImportedSymbol is a single name bound into file scope by an import
// declaration. Name is the identifier as referenced in code, which is the
// alias when one exists (import { a as b } binds "b").
type ImportedSymbol struct {
	// Name is the identifier as referenced in code.
	Name string `json:"name"`

	// Original is the pre-alias export name for aliased named imports.
	// Empty when no alias is involved.
	Original string `json:"original,omitempty"`

	// Classification is the removal-safety verdict for this symbol.
	// Every extracted symbol receives exactly one classification.
	Classification Classification `json:"classification"`

	// UsageCount is the number of non-self-referential textual matches
	// found for the symbol. The count is a boolean trigger only: anything
	// above zero means the symbol is used, and the magnitude carries no
	// further meaning because independent pattern classes may match the
	// same occurrence.
	UsageCount int `json:"usageCount"`
}

// ImportDeclaration is one import statement binding one or more names from
// a module path into the current file's scope.
type ImportDeclaration struct {
	// File is the path of the file containing the declaration.
	File string `json:"file"`

	// Line is the 1-based source line of the declaration.
	// Used for diagnostics and for self-reference exclusion during
	// usage scanning.
	Line int `json:"line"`

	// ModulePath is the quoted module specifier of the declaration.
	ModulePath string `json:"module"`

	// Kind is the syntactic shape of the declaration.
	Kind ImportKind `json:"kind"`

	// Symbols are the names the declaration introduces, in source order.
	// A declaration with an empty import list ({}), which is almost always
	// a leftover from manual editing, has zero symbols.
	Symbols []ImportedSymbol `json:"symbols"`
}

// UsageEvidence holds per-pattern-class match counts for one symbol.
// Matches inside the declaration's own line are already excluded.
//
// A single real usage can contribute to more than one class (a call
// expression also matches the bare-word class), so Total must only be
// interpreted as "zero" or "more than zero".
type UsageEvidence struct {
	// Bare counts word-boundary occurrences of the identifier that are not
	// immediately followed by a comma or closing brace.
	Bare int

	// JSXTag counts opening JSX tag uses (<Name ...>).
	JSXTag int

	// Call counts call-expression uses (Name(...)).
	Call int

	// PropertyAccess counts property-access uses (Name.member).
	PropertyAccess int
}

// Total returns the sum of all pattern-class counts.
func (e UsageEvidence) Total() int {
	return e.Bare + e.JSXTag + e.Call + e.PropertyAccess
}
