// Package phase orchestrates the cleanup pipeline's three phases:
// analysis, cleanup, and validation.
//
// The orchestrator is a linear state machine: Idle, through the requested
// phases in order, ending in Done or Failed. Each phase produces exactly
// one sealed PhaseResult, persisted to its own report file before the next
// phase starts, so a mid-run abort loses at most the in-progress phase.
// Phase failures are isolated: a failed phase marks the session Failed but
// later phases still run unless they hard-depend on the failed phase's
// output, as cleanup does on the analysis report.
package phase
