package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/importsweep/importsweep/internal/config"
	"github.com/importsweep/importsweep/internal/log"
	"github.com/importsweep/importsweep/internal/model"
	"github.com/importsweep/importsweep/internal/phase"
)

// TestNewRunCmd tests the run command creation.
func TestNewRunCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRunCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "run [phase...]" {
			t.Errorf("expected use 'run [phase...]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"root", "oracle", "session", "config", "json", "markdown", "output"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})

	t.Run("root flag defaults to current directory", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("root")
		if flag == nil {
			t.Fatal("expected root flag")
		}
		if flag.DefValue != "." {
			t.Errorf("expected default '.', got %q", flag.DefValue)
		}
	})
}

// TestBuildConfig tests flag-to-config translation.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		cmd.Flags().Bool("verbose", false, "")

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		if cfg.Root != "." {
			t.Errorf("Root = %q, want %q", cfg.Root, ".")
		}
		if cfg.Oracle != config.OracleRegex {
			t.Errorf("Oracle = %q, want %q", cfg.Oracle, config.OracleRegex)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to default to true")
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		cmd.Flags().Bool("verbose", false, "")
		for flag, value := range map[string]string{
			"root":    "/tmp/corpus",
			"oracle":  config.OracleTreeSitter,
			"session": "/tmp/session",
			"json":    "true",
			"output":  "report.json",
		} {
			if err := cmd.Flags().Set(flag, value); err != nil {
				t.Fatalf("failed to set %s flag: %v", flag, err)
			}
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		if cfg.Root != "/tmp/corpus" {
			t.Errorf("Root = %q, want %q", cfg.Root, "/tmp/corpus")
		}
		if cfg.Oracle != config.OracleTreeSitter {
			t.Errorf("Oracle = %q, want %q", cfg.Oracle, config.OracleTreeSitter)
		}
		if cfg.SessionDir != "/tmp/session" {
			t.Errorf("SessionDir = %q, want %q", cfg.SessionDir, "/tmp/session")
		}
		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
		if cfg.ReportFile != "report.json" {
			t.Errorf("ReportFile = %q, want %q", cfg.ReportFile, "report.json")
		}
	})

	t.Run("missing explicit config file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		cmd.Flags().Bool("verbose", false, "")
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("config file settings apply", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "importsweep.yaml")
		content := "extensions: [\".tsx\"]\nprogressInterval: 5\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewRunCmd()
		cmd.Flags().Bool("verbose", false, "")
		if err := cmd.Flags().Set("config", configPath); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".tsx" {
			t.Errorf("Extensions = %v, want [.tsx]", cfg.Extensions)
		}
		if cfg.ProgressInterval != 5 {
			t.Errorf("ProgressInterval = %d, want 5", cfg.ProgressInterval)
		}
	})
}

// testSessionConfig builds a config wired to shell stand-ins for the
// external tools, pointed at a temp corpus and session directory.
func testSessionConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	source := "import { debounce } from 'lodash';\n\nexport const x = 1;\n"
	if err := os.WriteFile(filepath.Join(root, "app.ts"), []byte(source), 0600); err != nil {
		t.Fatalf("failed to write corpus file: %v", err)
	}

	cfg := config.NewConfig()
	cfg.Root = root
	cfg.SessionDir = filepath.Join(t.TempDir(), "session")
	cfg.ReportFile = filepath.Join(t.TempDir(), "report.json")
	cfg.JSONReport = true
	cfg.SaveToDB = false
	cfg.LinterCommand = []string{"sh", "-c", "exit 0"}
	cfg.CheckerCommand = []string{"sh", "-c", "exit 0"}
	cfg.CleanupCommand = []string{"sh", "-c", `cat "$1" > /dev/null; echo '{"filesProcessed":1,"changesApplied":1}'`, "sh"}

	return cfg
}

// TestRunSession tests the full wiring from config to session report.
func TestRunSession(t *testing.T) {
	t.Parallel()

	cfg := testSessionConfig(t)
	logger := log.NewLogger(os.Stderr, cfg.Root, false)

	if err := runSession(context.Background(), cfg, nil, logger); err != nil {
		t.Fatalf("runSession failed: %v", err)
	}

	// The session report must have been persisted to the session dir.
	data, err := os.ReadFile(filepath.Join(cfg.SessionDir, phase.SessionReportFile))
	if err != nil {
		t.Fatalf("failed to read session report: %v", err)
	}

	var sessionReport model.SessionReport
	if err := json.Unmarshal(data, &sessionReport); err != nil {
		t.Fatalf("session report is not valid JSON: %v", err)
	}

	if sessionReport.SessionInfo.Status != model.SessionDone {
		t.Errorf("session status = %q, want %q", sessionReport.SessionInfo.Status, model.SessionDone)
	}
	if sessionReport.Impact.UnusedImportsFound != 1 {
		t.Errorf("unused imports = %d, want 1", sessionReport.Impact.UnusedImportsFound)
	}
	if !sessionReport.Impact.ValidationPassed {
		t.Error("expected validation to pass")
	}

	// The requested report file must exist and hold the same report.
	reportData, err := os.ReadFile(cfg.ReportFile)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	if !strings.Contains(string(reportData), `"sessionInfo"`) {
		t.Error("expected JSON session report in report file")
	}
}

// TestRunSessionFailedPhase tests that a failing checker fails the session.
func TestRunSessionFailedPhase(t *testing.T) {
	t.Parallel()

	cfg := testSessionConfig(t)
	cfg.CheckerCommand = []string{"sh", "-c", "echo 'type error'; exit 2"}
	logger := log.NewLogger(os.Stderr, cfg.Root, false)

	// A failing strict checker is an issues_found result, not a phase
	// failure: the session still completes, with ValidationPassed false.
	if err := runSession(context.Background(), cfg, nil, logger); err != nil {
		t.Fatalf("runSession failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.SessionDir, phase.SessionReportFile))
	if err != nil {
		t.Fatalf("failed to read session report: %v", err)
	}

	var sessionReport model.SessionReport
	if err := json.Unmarshal(data, &sessionReport); err != nil {
		t.Fatalf("session report is not valid JSON: %v", err)
	}
	if sessionReport.Impact.ValidationPassed {
		t.Error("expected validation to fail")
	}
}

// TestRunSessionCleanupWithoutAnalysis tests that an orphan cleanup run
// records a failed session without a non-zero exit.
func TestRunSessionCleanupWithoutAnalysis(t *testing.T) {
	t.Parallel()

	cfg := testSessionConfig(t)
	logger := log.NewLogger(os.Stderr, cfg.Root, false)

	// Phase failures are advisory at the process level.
	if err := runSession(context.Background(), cfg, []string{model.PhaseCleanup}, logger); err != nil {
		t.Fatalf("runSession failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.SessionDir, phase.SessionReportFile))
	if err != nil {
		t.Fatalf("failed to read session report: %v", err)
	}

	var sessionReport model.SessionReport
	if err := json.Unmarshal(data, &sessionReport); err != nil {
		t.Fatalf("session report is not valid JSON: %v", err)
	}
	if sessionReport.SessionInfo.Status != model.SessionFailed {
		t.Errorf("session status = %q, want %q", sessionReport.SessionInfo.Status, model.SessionFailed)
	}
}

// TestRunSessionAllUnknownPhases tests that a run naming only unknown
// phases is an orchestration-level error.
func TestRunSessionAllUnknownPhases(t *testing.T) {
	t.Parallel()

	cfg := testSessionConfig(t)
	logger := log.NewLogger(os.Stderr, cfg.Root, false)

	err := runSession(context.Background(), cfg, []string{"deploy"}, logger)
	if err == nil {
		t.Fatal("expected error when no known phases were requested")
	}
	if !strings.Contains(err.Error(), "session failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestNewOracle tests oracle selection.
func TestNewOracle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		oracle string
		want   string
	}{
		{name: "regex", oracle: config.OracleRegex, want: "regex"},
		{name: "treesitter", oracle: config.OracleTreeSitter, want: "tree-sitter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Oracle = tt.oracle

			oracle, closeOracle := newOracle(cfg)
			defer closeOracle()

			if oracle.Name() != tt.want {
				t.Errorf("oracle name = %q, want %q", oracle.Name(), tt.want)
			}
		})
	}
}
