package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/importsweep/importsweep/internal/model"
)

// writeIntegrationCorpus creates a small corpus with one unused and one
// used import.
func writeIntegrationCorpus(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"app.tsx": "import React from 'react';\n" +
			"import { format } from 'date-fns';\n" +
			"import { debounce } from 'lodash';\n\n" +
			"export const App = () => <div>{format(new Date(), 'yyyy')}</div>;\n",
		"util.ts": "export const id = (x: number) => x;\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

// TestRunCommandEndToEnd drives the CLI through cobra: config file
// discovery, analysis over a real corpus, shell stand-ins for the
// external tools, and JSON report output.
func TestRunCommandEndToEnd(t *testing.T) {
	// Redirect the history database away from the real data directory.
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()

	root := writeIntegrationCorpus(t)
	sessionDir := filepath.Join(t.TempDir(), "session")
	reportFile := filepath.Join(t.TempDir(), "report.json")

	configPath := filepath.Join(t.TempDir(), "importsweep.yaml")
	configContent := `tools:
  linter: ["sh", "-c", "exit 0"]
  checker: ["sh", "-c", "exit 0"]
  cleanup: ["sh", "-c", "cat \"$1\" > /dev/null; echo '{\"filesProcessed\":1,\"changesApplied\":1}'", "sh"]
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd := NewRootCmd()
	cmd.SetArgs([]string{
		"run",
		"--root", root,
		"--config", configPath,
		"--session", sessionDir,
		"--json",
		"--output", reportFile,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	data, err := os.ReadFile(reportFile)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}

	var sessionReport model.SessionReport
	if err := json.Unmarshal(data, &sessionReport); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}

	if sessionReport.SessionInfo.Status != model.SessionDone {
		t.Errorf("session status = %q, want %q", sessionReport.SessionInfo.Status, model.SessionDone)
	}
	if sessionReport.Impact.FilesAnalyzed != 2 {
		t.Errorf("files analyzed = %d, want 2", sessionReport.Impact.FilesAnalyzed)
	}
	// debounce is the only unused import: react is essential and format
	// is used.
	if sessionReport.Impact.UnusedImportsFound != 1 {
		t.Errorf("unused imports = %d, want 1", sessionReport.Impact.UnusedImportsFound)
	}
	if !sessionReport.Impact.ValidationPassed {
		t.Error("expected validation to pass")
	}

	// The analysis, per-phase, and session reports must all exist in the
	// session directory.
	for _, name := range []string{
		"analysis-report.json",
		"phase-analysis-report.json",
		"phase-cleanup-report.json",
		"phase-validation-report.json",
		"session-report.json",
	} {
		if _, err := os.Stat(filepath.Join(sessionDir, name)); err != nil {
			t.Errorf("expected %s in session dir: %v", name, err)
		}
	}
}

// TestCompareCommandEndToEnd drives the compare command against a history
// database populated by two runs.
func TestCompareCommandEndToEnd(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()

	root := writeIntegrationCorpus(t)

	configPath := filepath.Join(t.TempDir(), "importsweep.yaml")
	configContent := `tools:
  linter: ["sh", "-c", "exit 0"]
  checker: ["sh", "-c", "exit 0"]
  cleanup: ["sh", "-c", "cat \"$1\" > /dev/null; echo '{\"filesProcessed\":1,\"changesApplied\":1}'", "sh"]
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	// Two runs over the same corpus give compare something to work with.
	for i := 0; i < 2; i++ {
		cmd := NewRootCmd()
		cmd.SetArgs([]string{
			"run", "analysis",
			"--root", root,
			"--config", configPath,
			"--session", filepath.Join(t.TempDir(), "session"),
			"--output", filepath.Join(t.TempDir(), "report.txt"),
		})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
	}

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"compare", "--json", root})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("compare command failed: %v", err)
	}
}
