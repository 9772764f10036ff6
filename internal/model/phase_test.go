package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestPhaseResultSealing tests that a sealed phase result refuses mutation.
func TestPhaseResultSealing(t *testing.T) {
	t.Parallel()

	t.Run("mutations allowed before sealing", func(t *testing.T) {
		t.Parallel()

		pr := NewPhaseResult(PhaseAnalysis)

		if err := pr.AddError("disk on fire"); err != nil {
			t.Fatalf("AddError before seal: %v", err)
		}
		if err := pr.SetResults("payload"); err != nil {
			t.Fatalf("SetResults before seal: %v", err)
		}
		if pr.Sealed() {
			t.Error("result should not be sealed yet")
		}
	})

	t.Run("mutations refused after sealing", func(t *testing.T) {
		t.Parallel()

		pr := NewPhaseResult(PhaseCleanup)
		if err := pr.Seal(2*time.Second, true); err != nil {
			t.Fatalf("Seal: %v", err)
		}

		if !pr.Sealed() {
			t.Fatal("result should be sealed")
		}
		if err := pr.AddError("late error"); !errors.Is(err, ErrSealed) {
			t.Errorf("AddError after seal = %v, want ErrSealed", err)
		}
		if err := pr.SetResults("late payload"); !errors.Is(err, ErrSealed) {
			t.Errorf("SetResults after seal = %v, want ErrSealed", err)
		}
		if len(pr.Errors) != 0 {
			t.Errorf("errors were appended after seal: %v", pr.Errors)
		}
	})

	t.Run("double seal keeps first values", func(t *testing.T) {
		t.Parallel()

		pr := NewPhaseResult(PhaseValidation)
		if err := pr.Seal(time.Second, true); err != nil {
			t.Fatalf("first Seal: %v", err)
		}
		if err := pr.Seal(time.Minute, false); !errors.Is(err, ErrSealed) {
			t.Errorf("second Seal = %v, want ErrSealed", err)
		}

		if pr.Duration != time.Second {
			t.Errorf("duration = %v, want 1s", pr.Duration)
		}
		if !pr.Completed {
			t.Error("completed flag was overwritten by second seal")
		}
	})
}

// TestPhaseResultMarshalJSON tests the persisted per-phase report shape.
func TestPhaseResultMarshalJSON(t *testing.T) {
	t.Parallel()

	pr := NewPhaseResult(PhaseAnalysis)
	if err := pr.SetResults(map[string]int{"filesAnalyzed": 3}); err != nil {
		t.Fatalf("SetResults: %v", err)
	}
	if err := pr.AddError("one file skipped"); err != nil {
		t.Fatalf("AddError: %v", err)
	}
	if err := pr.Seal(1500*time.Millisecond, true); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	data, err := json.Marshal(pr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["phase"] != "analysis" {
		t.Errorf("phase = %v, want analysis", decoded["phase"])
	}
	if decoded["duration"] != 1.5 {
		t.Errorf("duration = %v, want 1.5 seconds", decoded["duration"])
	}
	if decoded["completed"] != true {
		t.Errorf("completed = %v, want true", decoded["completed"])
	}
	if _, ok := decoded["timestamp"]; !ok {
		t.Error("timestamp missing from persisted phase report")
	}
}

// TestAnalysisReportBuildSummary tests summary derivation.
func TestAnalysisReportBuildSummary(t *testing.T) {
	t.Parallel()

	report := &AnalysisReport{
		Statistics: Statistics{
			FilesAnalyzed:      3,
			ImportsAnalyzed:    10,
			UnusedImportsFound: 4,
			SafeToRemove:       1,
			RequiresReview:     3,
			Errors:             1,
		},
		FileAnalyses: []FileAnalysis{
			{File: "a.tsx", UnusedImports: []UnusedImport{{Symbol: "Button"}}},
			{File: "b.tsx"},
			{File: "c.tsx", UnusedImports: []UnusedImport{{Symbol: "Logger"}, {Symbol: "clsx"}}},
		},
	}

	report.BuildSummary()

	if report.Summary.TotalFiles != 4 {
		t.Errorf("totalFiles = %d, want 4 (3 analyzed + 1 errored)", report.Summary.TotalFiles)
	}
	if report.Summary.FilesWithUnusedImports != 2 {
		t.Errorf("filesWithUnusedImports = %d, want 2", report.Summary.FilesWithUnusedImports)
	}
	if report.Summary.TotalUnusedImports != 4 {
		t.Errorf("totalUnusedImports = %d, want 4", report.Summary.TotalUnusedImports)
	}
}

// TestAnalysisReportAllSafeRemovals tests flattening of the safe-removal set.
func TestAnalysisReportAllSafeRemovals(t *testing.T) {
	t.Parallel()

	report := &AnalysisReport{
		FileAnalyses: []FileAnalysis{
			{
				File: "a.tsx",
				SafeRemovals: []UnusedImport{
					{File: "a.tsx", Symbol: "Button", Module: "lucide-react", Line: 2, Classification: SafeRemoval},
				},
			},
			{File: "b.tsx"},
			{
				File: "c.tsx",
				SafeRemovals: []UnusedImport{
					{File: "c.tsx", Symbol: "format", Module: "date-fns", Line: 5, Classification: SafeRemoval},
				},
			},
		},
	}

	removals := report.AllSafeRemovals()
	if len(removals) != 2 {
		t.Fatalf("got %d removals, want 2", len(removals))
	}
	if removals[0].File != "a.tsx" || removals[1].File != "c.tsx" {
		t.Errorf("removals out of traversal order: %+v", removals)
	}
}

// TestSourceFileLine tests 1-based line access.
func TestSourceFileLine(t *testing.T) {
	t.Parallel()

	f := &SourceFile{Path: "x.ts", Content: "first\nsecond\nthird"}

	if got := f.Line(2); got != "second" {
		t.Errorf("Line(2) = %q, want %q", got, "second")
	}
	if got := f.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := f.Line(4); got != "" {
		t.Errorf("Line(4) = %q, want empty", got)
	}
}
