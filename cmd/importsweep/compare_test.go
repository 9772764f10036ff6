package main

import (
	"testing"
	"time"

	"github.com/importsweep/importsweep/internal/model"
)

// sessionReportWith builds a session report with the given impact numbers.
func sessionReportWith(status string, unused, changed int, validated bool) *model.SessionReport {
	return &model.SessionReport{
		SessionInfo: model.SessionInfo{
			Timestamp: time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC),
			Status:    status,
		},
		Impact: model.Impact{
			FilesAnalyzed:      10,
			UnusedImportsFound: unused,
			ChangesApplied:     changed,
			ValidationPassed:   validated,
		},
	}
}

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare [corpus-root]" {
			t.Errorf("expected use 'compare [corpus-root]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"list", "list-roots", "with-session-id", "json"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})
}

// TestCompareSessions tests the session comparison logic.
func TestCompareSessions(t *testing.T) {
	t.Parallel()

	t.Run("fewer unused imports improves", func(t *testing.T) {
		t.Parallel()

		previous := sessionReportWith(model.SessionDone, 20, 0, false)
		current := sessionReportWith(model.SessionDone, 5, 15, true)

		result := compareSessions("/src/webapp", previous, current)

		if result.Root != "/src/webapp" {
			t.Errorf("root = %q, want %q", result.Root, "/src/webapp")
		}
		if result.Trend.Direction != trendImproved {
			t.Errorf("direction = %q, want %q", result.Trend.Direction, trendImproved)
		}
		if result.Trend.UnusedImportsDelta != -15 {
			t.Errorf("unused delta = %d, want -15", result.Trend.UnusedImportsDelta)
		}
		if result.Trend.ChangesAppliedDelta != 15 {
			t.Errorf("changes delta = %d, want 15", result.Trend.ChangesAppliedDelta)
		}
	})

	t.Run("more unused imports worsens", func(t *testing.T) {
		t.Parallel()

		previous := sessionReportWith(model.SessionDone, 5, 0, true)
		current := sessionReportWith(model.SessionDone, 9, 0, true)

		result := compareSessions("/src/webapp", previous, current)
		if result.Trend.Direction != trendWorsened {
			t.Errorf("direction = %q, want %q", result.Trend.Direction, trendWorsened)
		}
	})

	t.Run("equal count follows validation outcome", func(t *testing.T) {
		t.Parallel()

		previous := sessionReportWith(model.SessionFailed, 5, 0, false)
		current := sessionReportWith(model.SessionDone, 5, 0, true)

		result := compareSessions("/src/webapp", previous, current)
		if result.Trend.Direction != trendImproved {
			t.Errorf("direction = %q, want %q", result.Trend.Direction, trendImproved)
		}
	})

	t.Run("identical sessions are unchanged", func(t *testing.T) {
		t.Parallel()

		previous := sessionReportWith(model.SessionDone, 5, 0, true)
		current := sessionReportWith(model.SessionDone, 5, 0, true)

		result := compareSessions("/src/webapp", previous, current)
		if result.Trend.Direction != trendUnchanged {
			t.Errorf("direction = %q, want %q", result.Trend.Direction, trendUnchanged)
		}
	})
}

// TestFormatDelta tests signed delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int
		want  string
	}{
		{delta: 3, want: "+3"},
		{delta: -2, want: "-2"},
		{delta: 0, want: "0"},
	}

	for _, tt := range tests {
		if got := formatDelta(tt.delta); got != tt.want {
			t.Errorf("formatDelta(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

// TestFormatImpact tests the compact impact summary.
func TestFormatImpact(t *testing.T) {
	t.Parallel()

	impact := model.Impact{UnusedImportsFound: 7, ChangesApplied: 4, ValidationPassed: true}
	got := formatImpact(impact)

	want := "unused:7 changed:4 validated"
	if got != want {
		t.Errorf("formatImpact = %q, want %q", got, want)
	}

	impact.ValidationPassed = false
	if got := formatImpact(impact); got != "unused:7 changed:4" {
		t.Errorf("formatImpact = %q, want %q", got, "unused:7 changed:4")
	}
}
