package analyzer

import (
	"regexp"
	"strings"

	"github.com/importsweep/importsweep/internal/model"
)

// importPattern recognizes single-line import declarations in their three
// shapes: namespace (* as n), named ({a, b as c}), and default.
// Multi-line or otherwise unrecognized import syntax simply produces no
// declaration; that is not an error.
var importPattern = regexp.MustCompile(
	`^import\s+(?:\*\s+as\s+(\w+)|\{([^}]*)\}|(\w+))\s+from\s+['"]([^'"]+)['"];?\s*$`,
)

// Extractor parses one file's text into its import declarations.
// It has no side effects and no configuration.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the file's import declarations in source order.
// Lines are numbered from 1 for diagnostics and self-reference exclusion.
func (e *Extractor) Extract(file *model.SourceFile) []model.ImportDeclaration {
	var decls []model.ImportDeclaration

	for i, line := range strings.Split(file.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import ") {
			continue
		}

		m := importPattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		namespaceName, namedList, defaultName, modulePath := m[1], m[2], m[3], m[4]

		decl := model.ImportDeclaration{
			File:       file.Path,
			Line:       i + 1,
			ModulePath: modulePath,
		}

		switch {
		case namespaceName != "":
			decl.Kind = model.KindNamespace
			decl.Symbols = []model.ImportedSymbol{{Name: namespaceName}}
		case defaultName != "":
			decl.Kind = model.KindDefault
			decl.Symbols = []model.ImportedSymbol{{Name: defaultName}}
		default:
			decl.Kind = model.KindNamed
			decl.Symbols = parseNamedList(namedList)
		}

		decls = append(decls, decl)
	}

	return decls
}

// parseNamedList splits a named import list into symbols, resolving
// "original as alias" entries to the alias, which is the name actually
// bound in file scope. An empty list ({}) yields no symbols.
func parseNamedList(list string) []model.ImportedSymbol {
	var symbols []model.ImportedSymbol

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if original, alias, ok := strings.Cut(entry, " as "); ok {
			symbols = append(symbols, model.ImportedSymbol{
				Name:     strings.TrimSpace(alias),
				Original: strings.TrimSpace(original),
			})
			continue
		}

		symbols = append(symbols, model.ImportedSymbol{Name: entry})
	}

	return symbols
}
