package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The pattern tables and the allow-list mirror what a React/TypeScript
// corpus typically needs; all of them can be overridden in the config file.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "importsweep"

	// DefaultProgressInterval is how many files to analyze between
	// progress log lines. Progress reporting is deterministic because
	// corpus traversal order is deterministic.
	DefaultProgressInterval = 25

	// DefaultSessionPrefix names session directories under the session
	// root: sessions/<timestamp>.
	DefaultSessionPrefix = "sessions"

	// SessionTimestampLayout formats session directory names.
	// Second resolution is enough: sessions are started by a human.
	SessionTimestampLayout = "20060102-150405"

	// OracleRegex selects the pattern-matching usage oracle (default).
	OracleRegex = "regex"

	// OracleTreeSitter selects the parse-tree usage oracle.
	OracleTreeSitter = "treesitter"
)

// DefaultExtensions are the file extensions selected for analysis.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// DefaultIgnoreDirs are directory names skipped during corpus traversal.
// These hold generated or third-party code that must never be rewritten.
var DefaultIgnoreDirs = []string{"node_modules", ".git", "dist", "build", "coverage", ".next"}

// Default external collaborator command lines. The cleanup mutator receives
// one extra argument: the path of a JSON file listing the safe removals.
var (
	// DefaultLinterCommand is the lenient linter. Its findings are
	// advisory and never gate validation.
	DefaultLinterCommand = []string{"npx", "eslint", ".", "--format", "json"}

	// DefaultCheckerCommand is the strict checker. Validation passes iff
	// this command reports success.
	DefaultCheckerCommand = []string{"npx", "tsc", "--noEmit"}

	// DefaultCleanupCommand is the external mutator that performs the
	// actual file edits, restricted to the safe-removal set.
	DefaultCleanupCommand = []string{"node", "scripts/remove-unused-imports.js"}
)

// Config holds all configuration options for importsweep.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// Root is the corpus root directory to analyze.
	Root string

	// Extensions are the file extensions selected for analysis.
	Extensions []string

	// IgnoreDirs are directory names skipped during traversal.
	IgnoreDirs []string

	// Oracle selects the usage-detection implementation:
	// OracleRegex (default) or OracleTreeSitter.
	Oracle string

	// Preserve holds the essential and contextual preserve patterns.
	Preserve *PreserveTable

	// SafeRemovalModules is the allow-list of module paths whose unused
	// imports may be removed without review.
	SafeRemovalModules []string

	// ProgressInterval is how many files to analyze between progress
	// log lines.
	ProgressInterval int

	// SessionRoot is the directory under which per-session directories
	// are created. Defaults to the XDG data directory.
	SessionRoot string

	// SessionDir, when set, resumes an existing session directory instead
	// of creating a new one. This is how a cleanup-only run finds the
	// analysis report of an earlier run.
	SessionDir string

	// LinterCommand is the lenient linter argv.
	LinterCommand []string

	// CheckerCommand is the strict checker argv.
	CheckerCommand []string

	// CleanupCommand is the external mutator argv.
	CleanupCommand []string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .importsweep in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON session report output on stdout.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown session report output on stdout.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the session report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// SaveToDB indicates whether to save session summaries to the
	// history database.
	SaveToDB bool

	// DBDir is the directory path for storing the SQLite database.
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most
// React/TypeScript corpora. Users can override specific values after
// creation.
func NewConfig() *Config {
	return &Config{
		Root:               ".",
		Extensions:         append([]string(nil), DefaultExtensions...),
		IgnoreDirs:         append([]string(nil), DefaultIgnoreDirs...),
		Oracle:             OracleRegex,
		Preserve:           DefaultPreserveTable(),
		SafeRemovalModules: append([]string(nil), DefaultSafeRemovalModules...),
		ProgressInterval:   DefaultProgressInterval,
		SessionRoot:        filepath.Join(XDGDataDir(), DefaultSessionPrefix),
		LinterCommand:      append([]string(nil), DefaultLinterCommand...),
		CheckerCommand:     append([]string(nil), DefaultCheckerCommand...),
		CleanupCommand:     append([]string(nil), DefaultCleanupCommand...),
	}
}

// NewSessionDir returns the directory for a session starting at the given
// time: <SessionRoot>/<timestamp>. When SessionDir is set (resumed
// session) it is returned unchanged.
func (c *Config) NewSessionDir(start time.Time) string {
	if c.SessionDir != "" {
		return c.SessionDir
	}
	return filepath.Join(c.SessionRoot, start.Format(SessionTimestampLayout))
}

// XDGDataDir returns the XDG data directory for importsweep.
// On Linux: ~/.local/share/importsweep
// On macOS: ~/Library/Application Support/importsweep
// On Windows: %LOCALAPPDATA%\importsweep
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for importsweep.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrNoRoot
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}

	if c.Oracle != OracleRegex && c.Oracle != OracleTreeSitter {
		return ErrUnknownOracle
	}

	if c.ProgressInterval <= 0 {
		return ErrInvalidProgressInterval
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// Tool commands need at least an executable name; the cleanup and
	// validation phases cannot launch an empty argv.
	if len(c.LinterCommand) == 0 || len(c.CheckerCommand) == 0 || len(c.CleanupCommand) == 0 {
		return ErrEmptyToolCommand
	}

	return nil
}
