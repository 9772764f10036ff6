package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/importsweep/importsweep/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteAnalysis outputs the analysis report in Markdown format.
func (w *MarkdownWriter) WriteAnalysis(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeAnalysisHeader(md, report)
	w.writeAnalysisSummary(md, report)
	w.writeRecommendations(md, report.Recommendations)
	w.writeFindings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSession outputs the session report in Markdown format.
func (w *MarkdownWriter) WriteSession(report *model.SessionReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Import Cleanup Session Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", report.SessionInfo.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Duration", fmt.Sprintf("%.2fs", report.SessionInfo.Duration)},
			{"Session Directory", "`" + report.SessionInfo.SessionDir + "`"},
			{"Status", sessionStatusText(report.SessionInfo.Status)},
		},
	})
	md.PlainText("")

	md.H2("Phases")
	md.PlainText("")
	rows := make([][]string, len(report.Phases))
	for i, p := range report.Phases {
		status := "✅ completed"
		if !p.Completed {
			status = "❌ failed"
		}
		rows[i] = []string{p.Name, status, strconv.Itoa(len(p.Errors))}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Phase", "Status", "Errors"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Impact")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Files analyzed", strconv.Itoa(report.Impact.FilesAnalyzed)},
			{"Unused imports found", strconv.Itoa(report.Impact.UnusedImportsFound)},
			{"Files modified", strconv.Itoa(report.Impact.FilesModified)},
			{"Changes applied", strconv.Itoa(report.Impact.ChangesApplied)},
			{"Validation passed", strconv.FormatBool(report.Impact.ValidationPassed)},
		},
	})
	md.PlainText("")

	if len(report.Recommendations) > 0 {
		md.H2("Next Steps")
		md.PlainText("")
		md.BulletList(report.Recommendations...)
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeAnalysisHeader writes the report header with run information.
func (w *MarkdownWriter) writeAnalysisHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1("Unused Import Analysis Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", report.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Files Analyzed", strconv.Itoa(report.Statistics.FilesAnalyzed)},
			{"Imports Analyzed", strconv.Itoa(report.Statistics.ImportsAnalyzed)},
			{"Read Errors", strconv.Itoa(report.Statistics.Errors)},
		},
	})
	md.PlainText("")
}

// writeAnalysisSummary writes the classification summary section.
func (w *MarkdownWriter) writeAnalysisSummary(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Classification Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Classification", "Count"},
		Rows: [][]string{
			{"🟢 Safe to remove", strconv.Itoa(report.Statistics.SafeToRemove)},
			{"🟡 Requires review", strconv.Itoa(report.Statistics.RequiresReview)},
			{"**Total unused**", "**" + strconv.Itoa(report.Statistics.UnusedImportsFound) + "**"},
		},
	})
	md.PlainText("")

	if report.Statistics.UnusedImportsFound > 0 {
		w.writePieChart(md, report)
	}
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the classification split.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AnalysisReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Unused Import Classification"),
		piechart.WithShowData(true),
	)

	if report.Statistics.SafeToRemove > 0 {
		chart.LabelAndIntValue("Safe to remove", uint64(report.Statistics.SafeToRemove))
	}
	if report.Statistics.RequiresReview > 0 {
		chart.LabelAndIntValue("Requires review", uint64(report.Statistics.RequiresReview))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the findings.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AnalysisReport) {
	switch {
	case report.Statistics.UnusedImportsFound == 0:
		md.Tip("No unused imports detected. The corpus is clean.")
	case report.Statistics.SafeToRemove > 0 && report.Statistics.RequiresReview == 0:
		md.Notef(
			"All %d unused import(s) are safe to remove automatically.",
			report.Statistics.SafeToRemove,
		)
	case report.Statistics.RequiresReview > 0:
		md.Importantf(
			"%d unused import(s) require manual review before removal.",
			report.Statistics.RequiresReview,
		)
	}
	md.PlainText("")
}

// writeRecommendations writes the bulk-removal recommendation section.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, recs []model.Recommendation) {
	md.H2("Bulk Recommendations")
	md.PlainText("")

	if len(recs) == 0 {
		md.PlainText("No module crossed the bulk-removal threshold.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(recs))
	for i, rec := range recs {
		rows[i] = []string{
			priorityIndicator(rec.Priority) + " " + rec.Priority,
			"`" + rec.Module + "`",
			strconv.Itoa(rec.AffectedFiles),
			rec.Action,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Priority", "Module", "Affected Files", "Action"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFindings writes the per-file unused import tables.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Findings")
	md.PlainText("")

	if report.Statistics.UnusedImportsFound == 0 {
		md.PlainText("No unused imports detected.")
		md.PlainText("")
		return
	}

	var rows [][]string
	for _, fa := range report.FileAnalyses {
		for _, u := range fa.UnusedImports {
			rows = append(rows, []string{
				"`" + u.File + "`",
				strconv.Itoa(u.Line),
				u.Symbol,
				"`" + u.Module + "`",
				u.Classification.String(),
			})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "Line", "Symbol", "Module", "Classification"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [importsweep](https://github.com/importsweep/importsweep)*")
}

// sessionStatusText maps a session status to display text.
func sessionStatusText(status string) string {
	if status == model.SessionFailed {
		return "❌ Failed"
	}
	return "✅ Done"
}

// priorityIndicator returns a visual indicator for a recommendation priority.
func priorityIndicator(priority string) string {
	if priority == model.PriorityHigh {
		return "🔴"
	}
	return "🟡"
}
