package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/importsweep/importsweep/internal/model"
	"github.com/importsweep/importsweep/internal/scanner"
)

// Runner drives a whole-corpus analysis: discovery, per-file analysis, and
// cross-file aggregation, in that order. Files are processed strictly
// sequentially in the walker's lexical order, so a run is reproducible on
// an unchanged tree.
type Runner struct {
	walker           *scanner.Walker
	analyzer         *FileAnalyzer
	aggregator       *Aggregator
	logger           *slog.Logger
	progressInterval int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the logger used for progress and skip diagnostics.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithProgressInterval sets how many files are analyzed between progress
// log lines. Zero disables progress logging.
func WithProgressInterval(n int) RunnerOption {
	return func(r *Runner) {
		r.progressInterval = n
	}
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(walker *scanner.Walker, analyzer *FileAnalyzer, opts ...RunnerOption) *Runner {
	r := &Runner{
		walker:     walker,
		analyzer:   analyzer,
		aggregator: NewAggregator(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run analyzes the corpus and returns the sealed analysis report.
//
// File-level read and decode failures are absorbed into the error counter
// and logged; they never abort the run. The error return is non-nil only
// when the corpus root itself cannot be traversed or the context is
// canceled.
func (r *Runner) Run(ctx context.Context) (*model.AnalysisReport, error) {
	files, err := r.walker.Walk(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.AnalysisReport{
		FileAnalyses:    make([]model.FileAnalysis, 0, len(files)),
		Recommendations: make([]model.Recommendation, 0),
	}

	for i, rel := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if r.progressInterval > 0 && i > 0 && i%r.progressInterval == 0 {
			r.logger.Info("analysis progress", "analyzed", i, "total", len(files))
		}

		src, err := scanner.ReadSource(r.walker.Root(), rel)
		if err != nil {
			r.logger.Warn("skipping unreadable file", "file", rel, "error", err)
			report.Statistics.Errors++
			continue
		}

		fa := r.analyzer.Analyze(src)
		report.FileAnalyses = append(report.FileAnalyses, *fa)

		report.Statistics.FilesAnalyzed++
		for _, decl := range fa.Imports {
			report.Statistics.ImportsAnalyzed += len(decl.Symbols)
		}
		report.Statistics.UnusedImportsFound += len(fa.UnusedImports)
		report.Statistics.SafeToRemove += len(fa.SafeRemovals)
		report.Statistics.RequiresReview += len(fa.UnusedImports) - len(fa.SafeRemovals)
	}

	report.Recommendations = r.aggregator.Aggregate(report.FileAnalyses)
	report.Timestamp = time.Now()
	report.BuildSummary()

	r.logger.Info("analysis complete",
		"files", report.Statistics.FilesAnalyzed,
		"imports", report.Statistics.ImportsAnalyzed,
		"unused", report.Statistics.UnusedImportsFound,
		"safe", report.Statistics.SafeToRemove)

	return report, nil
}
