package phase

import (
	"context"

	"github.com/importsweep/importsweep/internal/analyzer"
	"github.com/importsweep/importsweep/internal/model"
	"github.com/importsweep/importsweep/internal/tools"
)

// Phase is one orchestrated stage of the pipeline.
//
// Run returns the phase's report payload. A returned error is a phase-level
// failure: the orchestrator records it, seals the result as not completed,
// and moves on. Advisory issues belong in the payload, not the error.
type Phase interface {
	// Name returns the canonical phase name.
	Name() string

	// Run executes the phase against the shared session state.
	Run(ctx context.Context, session *Session) (any, error)
}

// AnalysisPhase scans the corpus and persists the analysis report.
type AnalysisPhase struct {
	runner *analyzer.Runner
}

// NewAnalysisPhase creates the analysis phase around a corpus runner.
func NewAnalysisPhase(runner *analyzer.Runner) *AnalysisPhase {
	return &AnalysisPhase{runner: runner}
}

// Name implements Phase.
func (p *AnalysisPhase) Name() string { return model.PhaseAnalysis }

// Run analyzes the corpus, stores the report on the session for later
// phases, and persists it. Per-file errors are already absorbed into the
// report's counters; the phase itself fails only when the corpus cannot be
// traversed at all or the report cannot be written.
func (p *AnalysisPhase) Run(ctx context.Context, session *Session) (any, error) {
	report, err := p.runner.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := session.WriteReport(AnalysisReportFile, report); err != nil {
		return nil, err
	}

	session.Analysis = report
	return report, nil
}

// CleanupPhase hands the safe-removal set to the external mutator.
type CleanupPhase struct {
	mutator *tools.Mutator
}

// NewCleanupPhase creates the cleanup phase around a mutator.
func NewCleanupPhase(mutator *tools.Mutator) *CleanupPhase {
	return &CleanupPhase{mutator: mutator}
}

// Name implements Phase.
func (p *CleanupPhase) Name() string { return model.PhaseCleanup }

// Run requires a sealed analysis report, from this session or a resumed
// one; without it the phase fails fast, because cleanup must not run
// without knowing what is safe to remove.
func (p *CleanupPhase) Run(ctx context.Context, session *Session) (any, error) {
	if err := session.LoadAnalysis(); err != nil {
		return nil, err
	}
	return p.mutator.Apply(ctx, session.Analysis.AllSafeRemovals())
}

// ValidationPhase runs the lenient linter and the strict checker.
type ValidationPhase struct {
	validator *tools.Validator
}

// NewValidationPhase creates the validation phase around a validator.
func NewValidationPhase(validator *tools.Validator) *ValidationPhase {
	return &ValidationPhase{validator: validator}
}

// Name implements Phase.
func (p *ValidationPhase) Name() string { return model.PhaseValidation }

// Run invokes both checks. Issues found by either are payload, not error;
// only an unlaunchable tool fails the phase.
func (p *ValidationPhase) Run(ctx context.Context, session *Session) (any, error) {
	return p.validator.Validate(ctx)
}
