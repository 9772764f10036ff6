package phase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/importsweep/importsweep/internal/model"
	"github.com/importsweep/importsweep/internal/tools"
)

// State is the orchestrator's position in its linear state machine.
type State string

// Orchestrator states. Transitions are linear with no branching back:
// Idle, then each requested phase in order, then Done or Failed.
const (
	// StateIdle means no run has started.
	StateIdle State = "idle"

	// StateDone means every executed phase completed.
	StateDone State = "done"

	// StateFailed means at least one phase failed.
	StateFailed State = "failed"
)

// DefaultPhaseOrder is the full pipeline, run when the caller requests no
// explicit subset.
var DefaultPhaseOrder = []string{model.PhaseAnalysis, model.PhaseCleanup, model.PhaseValidation}

// Orchestrator drives the requested phases in order, seals and persists one
// PhaseResult per phase, and assembles the final SessionReport.
type Orchestrator struct {
	session *Session

	// registry maps canonical phase names to their implementations.
	// Insertion order is irrelevant; execution order comes from the
	// caller's request.
	registry map[string]Phase

	state  State
	logger *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithOrchestratorLogger sets the logger for run diagnostics.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an Orchestrator over the given phases.
func NewOrchestrator(session *Session, phases []Phase, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		session:  session,
		registry: make(map[string]Phase, len(phases)),
		state:    StateIdle,
		logger:   slog.Default(),
	}
	for _, p := range phases {
		o.registry[p.Name()] = p
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the orchestrator's current state. While a run is in
// progress the state is the executing phase's name.
func (o *Orchestrator) State() State {
	return o.state
}

// Result returns the sealed result of the named phase, or nil if the phase
// has not run.
func (o *Orchestrator) Result(name string) *model.PhaseResult {
	return o.session.Results[name]
}

// Execute runs the requested phases in the given order, defaulting to the
// full pipeline when names is empty. Unknown phase names are logged as
// warnings and skipped. Phase failures are recorded and isolated; the
// error return is reserved for orchestration-level problems (no runnable
// phases, unwritable session directory, cancellation).
//
// The returned SessionReport is persisted to the session directory before
// Execute returns.
func (o *Orchestrator) Execute(ctx context.Context, names []string) (*model.SessionReport, error) {
	if len(names) == 0 {
		names = DefaultPhaseOrder
	}

	start := time.Now()
	var (
		executed []string
		unknown  int
		failed   bool
	)

	for _, name := range names {
		select {
		case <-ctx.Done():
			o.state = StateFailed
			return nil, ctx.Err()
		default:
		}

		p, ok := o.registry[name]
		if !ok {
			o.logger.Warn("skipping unknown phase", "phase", name)
			unknown++
			continue
		}

		o.state = State(name)
		o.logger.Info("starting phase", "phase", name)

		result := model.NewPhaseResult(name)
		phaseStart := time.Now()
		payload, err := p.Run(ctx, o.session)
		duration := time.Since(phaseStart)

		if err != nil {
			o.logger.Error("phase failed", "phase", name, "error", err)
			result.AddError(err.Error())
			result.Seal(duration, false)
			failed = true
		} else {
			result.SetResults(payload)
			result.Seal(duration, true)
			o.logger.Info("phase completed", "phase", name, "duration", duration)
		}

		if err := o.session.WriteReport(PhaseReportFile(name), result); err != nil {
			o.state = StateFailed
			return nil, err
		}

		o.session.Results[name] = result
		executed = append(executed, name)
	}

	if len(executed) == 0 {
		o.state = StateFailed
		return nil, fmt.Errorf("%w: %v", ErrNoPhases, names)
	}

	if failed {
		o.state = StateFailed
	} else {
		o.state = StateDone
	}

	report := o.buildSessionReport(start, executed, unknown, failed)
	if err := o.session.WriteReport(SessionReportFile, report); err != nil {
		return nil, err
	}

	return report, nil
}

// buildSessionReport folds the sealed phase results into the run-level
// report: phase summaries in execution order, counters, corpus impact, and
// next-step recommendations for the operator.
func (o *Orchestrator) buildSessionReport(start time.Time, executed []string, unknown int, failed bool) *model.SessionReport {
	report := &model.SessionReport{
		SessionInfo: model.SessionInfo{
			Timestamp:  start,
			Duration:   time.Since(start).Seconds(),
			SessionDir: o.session.Dir,
			Status:     model.SessionDone,
		},
		Recommendations: make([]string, 0),
	}
	if failed {
		report.SessionInfo.Status = model.SessionFailed
	}

	report.Summary.TotalPhases = len(executed)
	report.Summary.WarningsGenerated = unknown

	for _, name := range executed {
		result := o.session.Results[name]
		report.Phases = append(report.Phases, model.PhaseSummary{
			Name:      result.Phase,
			Completed: result.Completed,
			Results:   result.Results,
			Errors:    result.Errors,
		})
		if result.Completed {
			report.Summary.CompletedPhases++
		}
		report.Summary.ErrorsEncountered += len(result.Errors)
	}

	o.applyImpact(report)
	o.deriveRecommendations(report)
	return report
}

func (o *Orchestrator) applyImpact(report *model.SessionReport) {
	if analysis := o.session.Analysis; analysis != nil {
		report.Impact.FilesAnalyzed = analysis.Statistics.FilesAnalyzed
		report.Impact.UnusedImportsFound = analysis.Statistics.UnusedImportsFound
		report.Summary.WarningsGenerated += analysis.Statistics.Errors
	}

	if result := o.completedPayload(model.PhaseCleanup); result != nil {
		if cleanup, ok := result.(*tools.CleanupResult); ok {
			report.Impact.FilesModified = cleanup.FilesProcessed
			report.Impact.ChangesApplied = cleanup.ChangesApplied
		}
	}

	if result := o.completedPayload(model.PhaseValidation); result != nil {
		if validation, ok := result.(*tools.ValidationResult); ok {
			report.Impact.ValidationPassed = validation.Passed
			if validation.Linting != nil && !validation.Linting.Passed() {
				report.Summary.WarningsGenerated++
			}
		}
	}
}

func (o *Orchestrator) completedPayload(phase string) any {
	result, ok := o.session.Results[phase]
	if !ok || !result.Completed {
		return nil
	}
	return result.Results
}

func (o *Orchestrator) deriveRecommendations(report *model.SessionReport) {
	if report.SessionInfo.Status == model.SessionFailed {
		report.Recommendations = append(report.Recommendations,
			"one or more phases failed - inspect the phase reports in "+o.session.Dir)
	}

	analysis := o.session.Analysis
	if analysis != nil {
		switch {
		case analysis.Statistics.UnusedImportsFound == 0:
			report.Recommendations = append(report.Recommendations,
				"no unused imports found - nothing to clean up")
		case analysis.Statistics.RequiresReview > 0:
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("%d unused imports need manual review - see %s",
					analysis.Statistics.RequiresReview, AnalysisReportFile))
		}
	}

	cleanupRan := o.completedPayload(model.PhaseCleanup) != nil
	if validation := o.completedPayload(model.PhaseValidation); validation != nil {
		if v, ok := validation.(*tools.ValidationResult); ok {
			switch {
			case v.Passed && cleanupRan:
				report.Recommendations = append(report.Recommendations,
					"validation passed - changes are ready to commit")
			case v.Passed:
				report.Recommendations = append(report.Recommendations,
					"validation passed")
			default:
				report.Recommendations = append(report.Recommendations,
					"strict checker reported issues - review before committing")
			}
		}
	}
}
