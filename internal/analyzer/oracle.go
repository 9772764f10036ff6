package analyzer

import (
	"regexp"
	"strings"

	"github.com/importsweep/importsweep/internal/model"
)

// UsageOracle reports where a symbol imported by decl is referenced in file.
// Implementations answer approximately; the analyzer only asks whether any
// usage exists, never for an exact count.
type UsageOracle interface {
	// Name identifies the oracle in logs and reports.
	Name() string
	// Usages scans file for references to sym, excluding the import
	// declaration's own line.
	Usages(file *model.SourceFile, decl *model.ImportDeclaration, sym string) (model.UsageEvidence, error)
}

// RegexOracle detects symbol usage with pattern matching over sanitized
// source text. Comments and string bodies are blanked before matching so a
// symbol mentioned in prose does not count as a usage.
type RegexOracle struct {
	// sanitized memoizes the blanked text per file path, since every
	// declaration in a file asks against the same content.
	sanitized map[string]string
}

// NewRegexOracle returns a RegexOracle ready for use.
func NewRegexOracle() *RegexOracle {
	return &RegexOracle{sanitized: make(map[string]string)}
}

// Name implements UsageOracle.
func (o *RegexOracle) Name() string { return "regex" }

// Usages implements UsageOracle. It counts four classes of reference:
// bare identifier uses (excluding import-list positions), JSX open tags,
// call expressions, and property accesses.
func (o *RegexOracle) Usages(file *model.SourceFile, decl *model.ImportDeclaration, sym string) (model.UsageEvidence, error) {
	text, ok := o.sanitized[file.Path]
	if !ok {
		text = Sanitize(file.Content)
		o.sanitized[file.Path] = text
	}

	lineStart, lineEnd := lineSpan(text, decl.Line)
	q := regexp.QuoteMeta(sym)

	var ev model.UsageEvidence

	bare := regexp.MustCompile(`\b` + q + `\b`)
	for _, m := range bare.FindAllStringIndex(text, -1) {
		if m[0] >= lineStart && m[0] < lineEnd {
			continue
		}
		// A match directly followed by ',' or '}' looks like an import
		// list or destructuring position, not a use.
		rest := strings.TrimLeft(text[m[1]:], " \t")
		if strings.HasPrefix(rest, ",") || strings.HasPrefix(rest, "}") {
			continue
		}
		ev.Bare++
	}

	jsx := regexp.MustCompile(`<` + q + `[\s/>]`)
	ev.JSXTag = countOutsideLine(jsx, text, lineStart, lineEnd)

	call := regexp.MustCompile(`\b` + q + `\s*\(`)
	ev.Call = countOutsideLine(call, text, lineStart, lineEnd)

	prop := regexp.MustCompile(`\b` + q + `\.`)
	ev.PropertyAccess = countOutsideLine(prop, text, lineStart, lineEnd)

	return ev, nil
}

func countOutsideLine(re *regexp.Regexp, text string, start, end int) int {
	n := 0
	for _, m := range re.FindAllStringIndex(text, -1) {
		if m[0] >= start && m[0] < end {
			continue
		}
		n++
	}
	return n
}

// lineSpan returns the byte range [start, end) of the 1-based line number
// in text, end exclusive of the trailing newline's successor. A line number
// past the end of text yields an empty span.
func lineSpan(text string, line int) (int, int) {
	start := 0
	for n := 1; n < line; n++ {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return len(text), len(text)
		}
		start += i + 1
	}
	end := len(text)
	if i := strings.IndexByte(text[start:], '\n'); i >= 0 {
		end = start + i + 1
	}
	return start, end
}
