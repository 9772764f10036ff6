package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// Tool result status values.
const (
	// StatusPassed means the tool ran and exited zero.
	StatusPassed = "passed"

	// StatusIssuesFound means the tool ran and exited non-zero. The
	// captured output describes the issues; whether they matter is the
	// caller's decision.
	StatusIssuesFound = "issues_found"
)

// Result is the structured outcome of one tool invocation.
type Result struct {
	// Tool is the display name the invocation was registered under.
	Tool string `json:"tool"`

	// Status is StatusPassed or StatusIssuesFound.
	Status string `json:"status"`

	// ExitCode is the tool's process exit code.
	ExitCode int `json:"exitCode"`

	// Output is the combined stdout and stderr, fully consumed before the
	// invocation returns.
	Output string `json:"output"`
}

// Passed reports whether the tool exited zero.
func (r *Result) Passed() bool {
	return r.Status == StatusPassed
}

// Runner executes external tools as blocking child processes.
type Runner struct {
	// dir is the working directory for every invocation. Empty means the
	// current process directory.
	dir string

	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkDir sets the working directory for tool invocations.
func WithWorkDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithToolLogger sets the logger used for invocation diagnostics.
func WithToolLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run invokes command as a blocking child process and fully consumes its
// output before returning. A non-zero exit is not an error: it produces a
// Result with status issues_found. The error return is reserved for tools
// that cannot be launched at all.
func (r *Runner) Run(ctx context.Context, name string, command []string) (*Result, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCommand, name)
	}

	r.logger.Debug("running external tool", "tool", name, "command", command)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = r.dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	result := &Result{
		Tool:   name,
		Status: StatusPassed,
		Output: output.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s: %v", ErrToolLaunch, name, err)
		}
		result.Status = StatusIssuesFound
		result.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug("external tool finished",
		"tool", name, "status", result.Status, "exitCode", result.ExitCode)

	return result, nil
}
