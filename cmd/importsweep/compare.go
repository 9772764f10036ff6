package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/importsweep/importsweep/internal/config"
	"github.com/importsweep/importsweep/internal/database"
	"github.com/importsweep/importsweep/internal/model"
	"github.com/spf13/cobra"
)

// Constants for trend direction and summary messages.
const (
	trendImproved  = "improved"
	trendWorsened  = "worsened"
	trendUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares session results with historical data stored in
// the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [corpus-root]",
		Short: "Compare session results with historical data",
		Long: `Compare displays differences between the current and previous cleanup sessions.

This command retrieves historical session data from the database and shows:
- The change in unused imports found between sessions
- The change in files analyzed and modifications applied
- Whether validation went from failing to passing (or back)

The comparison requires at least two sessions in the database for the
specified corpus root. Use 'importsweep run' to run sessions and save results.

Examples:
  # Compare latest two sessions for the current directory
  importsweep compare

  # Compare sessions for a specific corpus
  importsweep compare ./src

  # List all session history for a corpus
  importsweep compare --list ./src

  # Compare with a specific historical session by ID
  importsweep compare --with-session-id 5 ./src

  # Output comparison in JSON format
  importsweep compare --json ./src

  # List all corpus roots in the database
  importsweep compare --list-roots`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List session history for the specified corpus root")
	cmd.Flags().BoolP("list-roots", "L", false,
		"List all corpus roots in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-session-id", "i", 0,
		"Compare with a specific session by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listRoots, err := cmd.Flags().GetBool("list-roots")
	if err != nil {
		return err
	}

	// Resolve the corpus root before opening the database (unless
	// --list-roots, which needs no root).
	var root string
	if !listRoots {
		arg := "."
		if len(args) > 0 {
			arg = args[0]
		}
		root, err = filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("invalid corpus root %q: %w", arg, err)
		}
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listRoots {
		return listKnownRoots(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listSessionHistory(ctx, db, root)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	withSessionID, err := cmd.Flags().GetInt64("with-session-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, root, withSessionID, jsonOutput)
}

// listKnownRoots lists all corpus roots that have session records.
func listKnownRoots(ctx context.Context, db *database.SessionDB) error {
	roots, err := db.ListRoots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roots: %w", err)
	}

	if len(roots) == 0 {
		fmt.Println("No sessions found in the database.")
		fmt.Println("\nUse 'importsweep run' to analyze a corpus.")
		return nil
	}

	fmt.Printf("Corpus roots (%d):\n\n", len(roots))
	for _, root := range roots {
		fmt.Printf("  • %s\n", root)
	}
	fmt.Println("\nUse 'importsweep compare --list <root>' to see session history for a corpus.")

	return nil
}

// listSessionHistory lists all session records for a corpus root.
func listSessionHistory(ctx context.Context, db *database.SessionDB, root string) error {
	sessions, err := db.GetHistoryWithMetadata(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get session history: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Printf("No session history found for %s\n", root)
		fmt.Println("\nUse 'importsweep run' to analyze this corpus.")
		return nil
	}

	fmt.Printf("Session history for %s (%d sessions):\n\n", root, len(sessions))
	fmt.Printf("  %-6s  %-20s  %-8s  %s\n", "ID", "Date", "Status", "Impact")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, meta := range sessions {
		fmt.Printf("  %-6d  %-20s  %-8s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Status,
			formatImpact(meta.Impact),
		)
	}

	fmt.Println("\nUse 'importsweep compare <root>' to compare the latest two sessions.")
	fmt.Println("Use 'importsweep compare --with-session-id <id> <root>' to compare with a specific session.")

	return nil
}

// formatImpact formats an impact summary into a compact string.
func formatImpact(impact model.Impact) string {
	parts := []string{
		fmt.Sprintf("unused:%d", impact.UnusedImportsFound),
		fmt.Sprintf("changed:%d", impact.ChangesApplied),
	}
	if impact.ValidationPassed {
		parts = append(parts, "validated")
	}
	return strings.Join(parts, " ")
}

// runComparison performs the actual comparison between session reports.
func runComparison(ctx context.Context, db *database.SessionDB, root string, withSessionID int64, jsonOutput bool) error {
	history, err := db.GetHistory(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get session history: %w", err)
	}

	if len(history) == 0 {
		return fmt.Errorf("no session history found for %s", root)
	}

	if len(history) < 2 && withSessionID == 0 {
		return fmt.Errorf("at least 2 sessions are required for comparison (found %d)", len(history))
	}

	// Latest session is always the current one
	current := history[0]

	var previous *model.SessionReport
	if withSessionID > 0 {
		previous, err = db.GetSessionReportByID(ctx, withSessionID)
		if err != nil {
			return fmt.Errorf("failed to get session with ID %d: %w", withSessionID, err)
		}
		if previous == nil {
			return fmt.Errorf("session with ID %d not found", withSessionID)
		}
	} else {
		previous = history[1]
	}

	comparison := compareSessions(root, previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two session reports.
type ComparisonResult struct {
	// Root is the corpus root the sessions ran against.
	Root string `json:"root"`

	// PreviousSession contains metadata about the previous session.
	PreviousSession SessionSnapshot `json:"previous_session"`

	// CurrentSession contains metadata about the current session.
	CurrentSession SessionSnapshot `json:"current_session"`

	// Trend describes the overall change between the two sessions.
	Trend Trend `json:"trend"`
}

// SessionSnapshot contains metadata about a session for comparison display.
type SessionSnapshot struct {
	// Timestamp is when the session started.
	Timestamp time.Time `json:"timestamp"`

	// Status is the session outcome ("done" or "failed").
	Status string `json:"status"`

	// UnusedImportsFound is the number of unused symbols found.
	UnusedImportsFound int `json:"unused_imports_found"`

	// FilesAnalyzed is the number of files analyzed.
	FilesAnalyzed int `json:"files_analyzed"`

	// ChangesApplied is the number of changes the cleanup tool applied.
	ChangesApplied int `json:"changes_applied"`

	// ValidationPassed is whether the strict checker passed.
	ValidationPassed bool `json:"validation_passed"`
}

// Trend describes the change in corpus health between sessions.
type Trend struct {
	// Direction is "improved", "worsened", or "unchanged". It follows
	// the unused-import count, with validation outcome as tie breaker.
	Direction string `json:"direction"`

	// UnusedImportsDelta is the change in unused imports found.
	UnusedImportsDelta int `json:"unused_imports_delta"`

	// FilesAnalyzedDelta is the change in files analyzed.
	FilesAnalyzedDelta int `json:"files_analyzed_delta"`

	// ChangesAppliedDelta is the change in cleanup changes applied.
	ChangesAppliedDelta int `json:"changes_applied_delta"`
}

// compareSessions compares two session reports and generates a comparison
// result.
func compareSessions(root string, previous, current *model.SessionReport) *ComparisonResult {
	result := &ComparisonResult{
		Root:            root,
		PreviousSession: snapshotOf(previous),
		CurrentSession:  snapshotOf(current),
	}
	result.Trend = calculateTrend(result.PreviousSession, result.CurrentSession)
	return result
}

// snapshotOf extracts comparison metadata from a session report.
func snapshotOf(report *model.SessionReport) SessionSnapshot {
	return SessionSnapshot{
		Timestamp:          report.SessionInfo.Timestamp,
		Status:             report.SessionInfo.Status,
		UnusedImportsFound: report.Impact.UnusedImportsFound,
		FilesAnalyzed:      report.Impact.FilesAnalyzed,
		ChangesApplied:     report.Impact.ChangesApplied,
		ValidationPassed:   report.Impact.ValidationPassed,
	}
}

// calculateTrend calculates the change in corpus health between two sessions.
func calculateTrend(previous, current SessionSnapshot) Trend {
	trend := Trend{
		UnusedImportsDelta:  current.UnusedImportsFound - previous.UnusedImportsFound,
		FilesAnalyzedDelta:  current.FilesAnalyzed - previous.FilesAnalyzed,
		ChangesAppliedDelta: current.ChangesApplied - previous.ChangesApplied,
	}

	switch {
	case trend.UnusedImportsDelta < 0:
		trend.Direction = trendImproved
	case trend.UnusedImportsDelta > 0:
		trend.Direction = trendWorsened
	case current.ValidationPassed && !previous.ValidationPassed:
		trend.Direction = trendImproved
	case !current.ValidationPassed && previous.ValidationPassed:
		trend.Direction = trendWorsened
	default:
		trend.Direction = trendUnchanged
	}

	return trend
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable form.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Session Comparison: %s\n", result.Root)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nCorpus Health: %s\n", formatTrendDirection(result.Trend.Direction))

	fmt.Printf("\nPrevious session: %s (%s)\n",
		result.PreviousSession.Timestamp.Format("2006-01-02 15:04:05"),
		result.PreviousSession.Status)
	fmt.Printf("Current session:  %s (%s)\n",
		result.CurrentSession.Timestamp.Format("2006-01-02 15:04:05"),
		result.CurrentSession.Status)

	fmt.Println("\nImpact Summary:")
	fmt.Printf("  %-16s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 52))
	fmt.Printf("  %-16s  %-10d  %-10d  %-10s\n", "Unused imports",
		result.PreviousSession.UnusedImportsFound, result.CurrentSession.UnusedImportsFound,
		formatDelta(result.Trend.UnusedImportsDelta))
	fmt.Printf("  %-16s  %-10d  %-10d  %-10s\n", "Files analyzed",
		result.PreviousSession.FilesAnalyzed, result.CurrentSession.FilesAnalyzed,
		formatDelta(result.Trend.FilesAnalyzedDelta))
	fmt.Printf("  %-16s  %-10d  %-10d  %-10s\n", "Changes applied",
		result.PreviousSession.ChangesApplied, result.CurrentSession.ChangesApplied,
		formatDelta(result.Trend.ChangesAppliedDelta))
	fmt.Printf("  %-16s  %-10s  %-10s\n", "Validation",
		formatValidation(result.PreviousSession.ValidationPassed),
		formatValidation(result.CurrentSession.ValidationPassed))

	return nil
}

// formatTrendDirection formats the trend direction for display.
func formatTrendDirection(direction string) string {
	switch direction {
	case trendImproved:
		return "IMPROVED (fewer unused imports)"
	case trendWorsened:
		return "WORSENED (more unused imports)"
	default:
		return "UNCHANGED"
	}
}

// formatValidation formats a validation outcome for display.
func formatValidation(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
