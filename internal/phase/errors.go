package phase

import "errors"

var (
	// ErrPhaseDependency is returned when a phase's required predecessor
	// result is missing, e.g. cleanup requested with no analysis report.
	// It fails the phase immediately; mutation without a safe-removal set
	// is never attempted.
	ErrPhaseDependency = errors.New("phase: required predecessor result missing")

	// ErrNoPhases is returned when every requested phase name was unknown
	// and nothing could run.
	ErrNoPhases = errors.New("phase: no runnable phases requested")

	// ErrSessionDir is returned when the session directory cannot be
	// created or written. Reports are the run's only durable output, so
	// this is an orchestration-level failure.
	ErrSessionDir = errors.New("phase: session directory not writable")
)
