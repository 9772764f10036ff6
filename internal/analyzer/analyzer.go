package analyzer

import (
	"log/slog"

	"github.com/importsweep/importsweep/internal/config"
	"github.com/importsweep/importsweep/internal/model"
)

// FileAnalyzer classifies every imported symbol of one source file.
//
// The pipeline per declaration is fixed: essential preserve patterns first,
// contextual preserve patterns second, usage scanning last. A preserve match
// short-circuits scanning entirely, which is what makes framework and
// side-effect imports immune to the scanner's blind spots.
type FileAnalyzer struct {
	extractor  *Extractor
	preserve   *config.PreserveTable
	oracle     UsageOracle
	classifier *Classifier
	logger     *slog.Logger
}

// FileAnalyzerOption configures a FileAnalyzer.
type FileAnalyzerOption func(*FileAnalyzer)

// WithAnalyzerLogger sets the logger used for per-symbol diagnostics.
func WithAnalyzerLogger(logger *slog.Logger) FileAnalyzerOption {
	return func(a *FileAnalyzer) {
		a.logger = logger
	}
}

// NewFileAnalyzer wires an analyzer from its collaborators.
func NewFileAnalyzer(preserve *config.PreserveTable, oracle UsageOracle, classifier *Classifier, opts ...FileAnalyzerOption) *FileAnalyzer {
	a := &FileAnalyzer{
		extractor:  NewExtractor(),
		preserve:   preserve,
		oracle:     oracle,
		classifier: classifier,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze extracts and classifies the file's imports. Every extracted
// symbol leaves with exactly one classification. Oracle failures on a
// single symbol degrade to Used, the conservative verdict, and are
// absorbed rather than escalated.
func (a *FileAnalyzer) Analyze(file *model.SourceFile) *model.FileAnalysis {
	decls := a.extractor.Extract(file)

	fa := &model.FileAnalysis{
		File:          file.Path,
		TotalImports:  len(decls),
		UnusedImports: make([]model.UnusedImport, 0),
		SafeRemovals:  make([]model.UnusedImport, 0),
	}

	for i := range decls {
		decl := &decls[i]

		if a.preserve.EssentialMatch(decl.ModulePath) {
			markUsed(decl)
			continue
		}
		if a.preserve.ContextualMatch(decl.ModulePath, file.Content) {
			markUsed(decl)
			continue
		}

		for j := range decl.Symbols {
			sym := &decl.Symbols[j]

			ev, err := a.oracle.Usages(file, decl, sym.Name)
			if err != nil {
				a.logger.Warn("usage scan failed, keeping symbol",
					"file", file.Path, "symbol", sym.Name, "error", err)
				sym.Classification = model.Used
				continue
			}

			sym.UsageCount = ev.Total()
			if sym.UsageCount > 0 {
				sym.Classification = model.Used
				continue
			}

			sym.Classification = a.classifier.Classify(decl)
			unused := model.UnusedImport{
				File:           file.Path,
				Symbol:         sym.Name,
				Module:         decl.ModulePath,
				Line:           decl.Line,
				Classification: sym.Classification,
			}
			fa.UnusedImports = append(fa.UnusedImports, unused)
			if sym.Classification == model.SafeRemoval {
				fa.SafeRemovals = append(fa.SafeRemovals, unused)
			}
		}
	}

	fa.Imports = decls
	return fa
}

func markUsed(decl *model.ImportDeclaration) {
	for i := range decl.Symbols {
		decl.Symbols[i].Classification = model.Used
	}
}
