package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/importsweep/importsweep/internal/model"
)

// CleanupResult is the mutator's own report of what it changed.
type CleanupResult struct {
	// FilesProcessed is the number of files the mutator touched.
	FilesProcessed int `json:"filesProcessed"`

	// ChangesApplied is the number of import removals performed.
	ChangesApplied int `json:"changesApplied"`

	// Status is the tool invocation status.
	Status string `json:"status"`

	// Output is the mutator's combined output, kept for the phase report.
	Output string `json:"output"`
}

// Mutator delegates file mutation to an external cleanup script. The
// script receives the SafeRemoval findings as a JSON file path argument and
// is restricted to that set; this process never edits corpus files itself.
type Mutator struct {
	runner  *Runner
	command []string
}

// NewMutator creates a Mutator around the given cleanup command.
func NewMutator(runner *Runner, command []string) *Mutator {
	return &Mutator{runner: runner, command: command}
}

// Apply hands the safe-removal set to the cleanup script and parses its
// report. The error return covers launch failures, a non-zero exit, and an
// unparseable report; all are fatal to the cleanup phase because a cleanup
// whose effect is unknown must not be recorded as one that succeeded.
func (m *Mutator) Apply(ctx context.Context, removals []model.UnusedImport) (*CleanupResult, error) {
	if len(m.command) == 0 {
		return nil, fmt.Errorf("%w: cleanup", ErrEmptyCommand)
	}

	path, err := writeRemovalsFile(removals)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	result, err := m.runner.Run(ctx, "cleanup", append(append([]string(nil), m.command...), path))
	if err != nil {
		return nil, err
	}
	if !result.Passed() {
		return nil, fmt.Errorf("cleanup tool exited %d: %s", result.ExitCode, strings.TrimSpace(result.Output))
	}

	cleanup, err := parseCleanupReport(result.Output)
	if err != nil {
		return nil, err
	}
	cleanup.Status = result.Status
	cleanup.Output = result.Output
	return cleanup, nil
}

// writeRemovalsFile persists the safe-removal set to a temp file the
// cleanup script can read. The caller removes the file when done.
func writeRemovalsFile(removals []model.UnusedImport) (string, error) {
	if removals == nil {
		removals = []model.UnusedImport{}
	}

	data, err := json.MarshalIndent(removals, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode removals: %w", err)
	}

	f, err := os.CreateTemp("", "importsweep-removals-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create removals file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write removals file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close removals file: %w", err)
	}

	return filepath.Clean(f.Name()), nil
}

// parseCleanupReport extracts the mutator's JSON report from its output.
// The report is the last line that parses as a JSON object, so the script
// is free to log progress lines before it.
func parseCleanupReport(output string) (*CleanupResult, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}

		var report CleanupResult
		if err := json.Unmarshal([]byte(line), &report); err == nil {
			return &report, nil
		}
	}
	return nil, fmt.Errorf("%w: no JSON report in cleanup output", ErrMalformedToolReport)
}
