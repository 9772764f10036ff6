package model

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrSealed is returned when a mutation is attempted on a sealed PhaseResult.
// Once a phase ends its result is persisted and must never change.
var ErrSealed = errors.New("phase result already sealed")

// Canonical phase names. The orchestrator's registry is keyed by these.
const (
	// PhaseAnalysis scans the corpus and produces the AnalysisReport.
	PhaseAnalysis = "analysis"

	// PhaseCleanup delegates removal of SafeRemoval imports to the
	// external mutator.
	PhaseCleanup = "cleanup"

	// PhaseValidation runs the lenient linter and the strict checker.
	PhaseValidation = "validation"
)

// PhaseResult is the sealed outcome of one orchestrated phase.
// It is created at phase start, receives its payload and errors while the
// phase runs, and is sealed and persisted at phase end. After sealing it
// is immutable: mutation attempts return ErrSealed.
type PhaseResult struct {
	// Phase is the canonical phase name.
	Phase string

	// Completed is true when the phase ran to the end without a
	// phase-level error. Advisory issues (e.g. linter findings) do not
	// clear it.
	Completed bool

	// Duration is how long the phase ran.
	Duration time.Duration

	// Results is the phase-specific payload.
	Results any

	// Errors are the phase-level error messages, in occurrence order.
	Errors []string

	// Timestamp is when the phase started.
	Timestamp time.Time

	// sealed blocks further mutation once the result is persisted.
	sealed bool
}

// NewPhaseResult creates an unsealed result for the named phase,
// stamped with the current time.
func NewPhaseResult(phase string) *PhaseResult {
	return &PhaseResult{
		Phase:     phase,
		Timestamp: time.Now(),
	}
}

// AddError records a phase-level error message.
func (p *PhaseResult) AddError(msg string) error {
	if p.sealed {
		return ErrSealed
	}
	p.Errors = append(p.Errors, msg)
	return nil
}

// SetResults sets the phase payload.
func (p *PhaseResult) SetResults(results any) error {
	if p.sealed {
		return ErrSealed
	}
	p.Results = results
	return nil
}

// Seal finalizes the result with its duration and completion flag.
// Sealing twice returns ErrSealed and leaves the first seal intact.
func (p *PhaseResult) Seal(duration time.Duration, completed bool) error {
	if p.sealed {
		return ErrSealed
	}
	p.Duration = duration
	p.Completed = completed
	p.sealed = true
	return nil
}

// Sealed reports whether the result has been finalized.
func (p *PhaseResult) Sealed() bool {
	return p.sealed
}

// MarshalJSON writes the per-phase report shape:
// { phase, duration, results, errors, completed, timestamp }.
// Duration is reported in seconds for readability in persisted reports.
func (p *PhaseResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phase     string    `json:"phase"`
		Duration  float64   `json:"duration"`
		Results   any       `json:"results"`
		Errors    []string  `json:"errors,omitempty"`
		Completed bool      `json:"completed"`
		Timestamp time.Time `json:"timestamp"`
	}{
		Phase:     p.Phase,
		Duration:  p.Duration.Seconds(),
		Results:   p.Results,
		Errors:    p.Errors,
		Completed: p.Completed,
		Timestamp: p.Timestamp,
	})
}

// SessionInfo identifies one orchestrated run.
type SessionInfo struct {
	// Timestamp is when the session started.
	Timestamp time.Time `json:"timestamp"`

	// Duration is the whole-session duration in seconds.
	Duration float64 `json:"duration"`

	// SessionDir is the directory holding the per-phase report files.
	SessionDir string `json:"sessionDir"`

	// Status is "done" when every requested phase completed, "failed"
	// when any phase failed.
	Status string `json:"status"`
}

// Session status values.
const (
	// SessionDone means every requested phase completed.
	SessionDone = "done"

	// SessionFailed means at least one phase failed.
	SessionFailed = "failed"
)

// PhaseSummary is the session-report projection of one phase result.
type PhaseSummary struct {
	// Name is the canonical phase name.
	Name string `json:"name"`

	// Completed is whether the phase ran to the end without error.
	Completed bool `json:"completed"`

	// Results is the phase payload.
	Results any `json:"results"`

	// Errors are the phase-level error messages.
	Errors []string `json:"errors,omitempty"`
}

// SessionSummary condenses a session for report headers.
type SessionSummary struct {
	// TotalPhases is the number of phases that were run.
	TotalPhases int `json:"totalPhases"`

	// CompletedPhases is the number of phases that completed.
	CompletedPhases int `json:"completedPhases"`

	// ErrorsEncountered is the total number of phase-level errors.
	ErrorsEncountered int `json:"errorsEncountered"`

	// WarningsGenerated counts advisory issues: skipped unknown phases,
	// lenient-linter findings, and per-file read errors.
	WarningsGenerated int `json:"warningsGenerated"`
}

// Impact summarizes what the session did to the corpus.
type Impact struct {
	// FilesAnalyzed is the number of files analyzed.
	FilesAnalyzed int `json:"filesAnalyzed"`

	// UnusedImportsFound is the number of unused symbols found.
	UnusedImportsFound int `json:"unusedImportsFound"`

	// FilesModified is the number of files the cleanup collaborator
	// reported processing.
	FilesModified int `json:"filesModified"`

	// ChangesApplied is the number of changes the cleanup collaborator
	// reported applying.
	ChangesApplied int `json:"changesApplied"`

	// ValidationPassed is true iff the strict checker reported passed.
	ValidationPassed bool `json:"validationPassed"`
}

// SessionReport is the final run-level aggregation of all phase reports
// plus derived impact and operator recommendations. It is created once,
// at the end of a run. Phase results are append-only: once a phase is
// sealed its entry here never changes.
type SessionReport struct {
	// SessionInfo identifies the run.
	SessionInfo SessionInfo `json:"sessionInfo"`

	// Phases holds one summary per executed phase, in execution order.
	Phases []PhaseSummary `json:"phases"`

	// Summary condenses the session.
	Summary SessionSummary `json:"summary"`

	// Impact summarizes the session's effect on the corpus.
	Impact Impact `json:"impact"`

	// Recommendations are next-step suggestions for the human operator.
	Recommendations []string `json:"recommendations"`
}
