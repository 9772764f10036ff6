package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/importsweep/importsweep/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteAnalysis outputs the analysis report in human-readable format.
func (w *SimpleWriter) WriteAnalysis(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "UNUSED IMPORT ANALYSIS")

	sb.WriteString(fmt.Sprintf("Generated:        %s\n", report.Timestamp.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Files Analyzed:   %d\n", report.Statistics.FilesAnalyzed))
	sb.WriteString(fmt.Sprintf("Imports Analyzed: %d\n", report.Statistics.ImportsAnalyzed))
	if report.Statistics.Errors > 0 {
		sb.WriteString(fmt.Sprintf("Read Errors:      %d\n", report.Statistics.Errors))
	}
	sb.WriteString("\n")

	w.writeSection(&sb, "CLASSIFICATION SUMMARY")
	sb.WriteString(fmt.Sprintf("  SAFE TO REMOVE:  %d\n", report.Statistics.SafeToRemove))
	sb.WriteString(fmt.Sprintf("  REQUIRES REVIEW: %d\n", report.Statistics.RequiresReview))
	sb.WriteString(fmt.Sprintf("  TOTAL UNUSED:    %d\n", report.Statistics.UnusedImportsFound))
	sb.WriteString("\n")

	w.writeRecommendations(&sb, report.Recommendations)
	w.writeFindings(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSession outputs the session report in human-readable format.
func (w *SimpleWriter) WriteSession(report *model.SessionReport) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "CLEANUP SESSION")

	sb.WriteString(fmt.Sprintf("Started:     %s\n", report.SessionInfo.Timestamp.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:    %.2fs\n", report.SessionInfo.Duration))
	sb.WriteString(fmt.Sprintf("Session Dir: %s\n", report.SessionInfo.SessionDir))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", strings.ToUpper(report.SessionInfo.Status)))
	sb.WriteString("\n")

	w.writeSection(&sb, "PHASES")
	for _, p := range report.Phases {
		status := "ok"
		if !p.Completed {
			status = "FAILED"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", status, p.Name))
		for _, e := range p.Errors {
			sb.WriteString(fmt.Sprintf("        error: %s\n", e))
		}
	}
	sb.WriteString("\n")

	w.writeSection(&sb, "IMPACT")
	sb.WriteString(fmt.Sprintf("  Files analyzed:       %d\n", report.Impact.FilesAnalyzed))
	sb.WriteString(fmt.Sprintf("  Unused imports found: %d\n", report.Impact.UnusedImportsFound))
	sb.WriteString(fmt.Sprintf("  Files modified:       %d\n", report.Impact.FilesModified))
	sb.WriteString(fmt.Sprintf("  Changes applied:      %d\n", report.Impact.ChangesApplied))
	sb.WriteString(fmt.Sprintf("  Validation passed:    %t\n", report.Impact.ValidationPassed))
	sb.WriteString("\n")

	if len(report.Recommendations) > 0 {
		w.writeSection(&sb, "NEXT STEPS")
		for _, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("  * %s\n", rec))
		}
		sb.WriteString("\n")
	}

	w.writeFooter(&sb)
	return w.output.Write([]byte(sb.String()))
}

// writeBanner writes the top-level report banner.
func (w *SimpleWriter) writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	pad := (70 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeSection writes a section divider with its title.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeRecommendations writes the bulk-recommendation section.
func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, recs []model.Recommendation) {
	if len(recs) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "BULK RECOMMENDATIONS")

	if len(recs) == 0 {
		sb.WriteString("  No module crossed the bulk-removal threshold\n")
	}
	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("  [%s] %s (%d files)\n", strings.ToUpper(rec.Priority), rec.Module, rec.AffectedFiles))
		sb.WriteString(fmt.Sprintf("        %s\n", rec.Action))
	}
	sb.WriteString("\n")
}

// writeFindings writes the per-file unused import listing.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.AnalysisReport) {
	if report.Statistics.UnusedImportsFound == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "FINDINGS")

	if report.Statistics.UnusedImportsFound == 0 {
		sb.WriteString("  No unused imports detected\n\n")
		return
	}

	for _, fa := range report.FileAnalyses {
		if len(fa.UnusedImports) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s\n", fa.File))
		for _, u := range fa.UnusedImports {
			sb.WriteString(fmt.Sprintf("    line %d: %s from %q [%s]\n", u.Line, u.Symbol, u.Module, u.Classification))
		}
		if w.verbose {
			sb.WriteString(fmt.Sprintf("    (%d import declarations in file)\n", fa.TotalImports))
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by importsweep\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
