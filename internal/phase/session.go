package phase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/importsweep/importsweep/internal/model"
)

// Report file names inside a session directory.
const (
	// AnalysisReportFile holds the sealed AnalysisReport.
	AnalysisReportFile = "analysis-report.json"

	// SessionReportFile holds the final SessionReport.
	SessionReportFile = "session-report.json"
)

// PhaseReportFile returns the per-phase report file name. The "phase-"
// prefix keeps the analysis phase's sealed-result wrapper from colliding
// with AnalysisReportFile, which holds the AnalysisReport itself.
func PhaseReportFile(phase string) string {
	return "phase-" + phase + "-report.json"
}

// Session is the shared state of one orchestrated run. It lives for the
// duration of the run and is mutated by exactly one phase at a time.
type Session struct {
	// Dir is the session directory all reports are written to.
	Dir string

	// Analysis is the analysis phase's report, populated when the phase
	// runs in this session or loaded from Dir when a prior session is
	// resumed.
	Analysis *model.AnalysisReport

	// Results holds one sealed result per executed phase, keyed by phase
	// name. Insertion order is tracked separately by the orchestrator.
	Results map[string]*model.PhaseResult
}

// NewSession creates a Session rooted at dir, creating the directory.
func NewSession(dir string) (*Session, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionDir, err)
	}
	return &Session{
		Dir:     dir,
		Results: make(map[string]*model.PhaseResult),
	}, nil
}

// LoadAnalysis populates Session.Analysis from the persisted analysis
// report, used when cleanup or validation resume a prior session. A missing,
// unreadable, or wrong-shaped report returns ErrPhaseDependency: resuming
// cleanup against anything but a real analysis report would silently run it
// on an empty removal set.
func (s *Session) LoadAnalysis() error {
	if s.Analysis != nil {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, AnalysisReportFile))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPhaseDependency, AnalysisReportFile, err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPhaseDependency, AnalysisReportFile, err)
	}

	// An analysis report always carries a fileAnalyses array, even for an
	// empty corpus. Its absence means the file holds some other payload.
	if report.FileAnalyses == nil {
		return fmt.Errorf("%w: %s: not an analysis report", ErrPhaseDependency, AnalysisReportFile)
	}

	s.Analysis = &report
	return nil
}

// WriteReport atomically persists v as indented JSON under the session
// directory. The write goes to a temp file first and is renamed into place,
// so a crash never leaves a corrupt or partial report behind.
func (s *Session) WriteReport(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	data = append(data, '\n')

	target := filepath.Join(s.Dir, name)
	tmp, err := os.CreateTemp(s.Dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionDir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}

	return nil
}
