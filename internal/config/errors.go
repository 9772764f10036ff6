package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// We use package-level sentinel errors rather than creating new error
// instances in Validate() so callers can use errors.Is() for programmatic
// error handling while still getting human-readable messages.
var (
	// ErrNoRoot is returned when no corpus root directory is specified.
	ErrNoRoot = errors.New("no corpus root specified: provide a directory with --root")

	// ErrNoExtensions is returned when the extension list is empty.
	// Without extensions no file would ever be selected for analysis.
	ErrNoExtensions = errors.New("no file extensions configured: at least one is required")

	// ErrUnknownOracle is returned when the oracle name is neither
	// "regex" nor "treesitter".
	ErrUnknownOracle = errors.New("unknown usage oracle: must be \"regex\" or \"treesitter\"")

	// ErrInvalidProgressInterval is returned when the progress interval
	// is not positive.
	ErrInvalidProgressInterval = errors.New("invalid progress interval: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyToolCommand is returned when a collaborator command line
	// has no executable name.
	ErrEmptyToolCommand = errors.New("empty tool command: linter, checker, and cleanup commands need at least an executable")
)
