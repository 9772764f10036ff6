package model

import "time"

// UnusedImport is one unused-symbol finding within a file. It carries
// enough context for the cleanup collaborator to locate the import without
// re-running analysis.
type UnusedImport struct {
	// File is the path of the file containing the import, relative to the
	// corpus root.
	File string `json:"file"`

	// Symbol is the identifier as referenced in code.
	Symbol string `json:"symbol"`

	// Module is the module path the symbol was imported from.
	Module string `json:"module"`

	// Line is the 1-based source line of the owning declaration.
	Line int `json:"line"`

	// Classification is SafeRemoval or NeedsReview.
	Classification Classification `json:"classification"`
}

// FileAnalysis is the outcome of analyzing one source file. It outlives
// the transient per-file structures and feeds the aggregator.
type FileAnalysis struct {
	// File is the path of the analyzed file relative to the corpus root.
	File string `json:"file"`

	// TotalImports is the number of import declarations found in the file.
	TotalImports int `json:"totalImports"`

	// Imports are all extracted declarations with their symbols'
	// classifications filled in.
	Imports []ImportDeclaration `json:"imports,omitempty"`

	// UnusedImports lists every unused symbol (SafeRemoval and NeedsReview).
	UnusedImports []UnusedImport `json:"unusedImports"`

	// SafeRemovals is the subset of UnusedImports classified SafeRemoval.
	SafeRemovals []UnusedImport `json:"safeRemovals"`
}

// Statistics counts events across a whole analysis run. It is threaded
// through the run as an explicit value, never shared process-wide state.
type Statistics struct {
	// FilesAnalyzed is the number of files successfully analyzed.
	FilesAnalyzed int `json:"filesAnalyzed"`

	// ImportsAnalyzed is the number of imported symbols examined.
	ImportsAnalyzed int `json:"importsAnalyzed"`

	// UnusedImportsFound is the number of symbols found unused.
	UnusedImportsFound int `json:"unusedImportsFound"`

	// SafeToRemove is the number of unused symbols classified SafeRemoval.
	SafeToRemove int `json:"safeToRemove"`

	// RequiresReview is the number of unused symbols classified NeedsReview.
	RequiresReview int `json:"requiresReview"`

	// Errors is the number of files skipped due to read or decode errors.
	Errors int `json:"errors"`
}

// Summary condenses an analysis run for report headers.
type Summary struct {
	// TotalFiles is the number of files selected for analysis.
	TotalFiles int `json:"totalFiles"`

	// FilesWithUnusedImports is the number of files with at least one
	// unused import.
	FilesWithUnusedImports int `json:"filesWithUnusedImports"`

	// TotalUnusedImports is the total number of unused symbols found.
	TotalUnusedImports int `json:"totalUnusedImports"`

	// SafeToRemove is the number of unused symbols that can be removed
	// automatically.
	SafeToRemove int `json:"safeToRemove"`

	// RequiresReview is the number of unused symbols needing a human
	// decision.
	RequiresReview int `json:"requiresReview"`
}

// AnalysisReport is the sealed result of the analysis phase and the input
// the cleanup phase depends on.
type AnalysisReport struct {
	// Timestamp is when the analysis completed.
	Timestamp time.Time `json:"timestamp"`

	// Statistics are the run counters.
	Statistics Statistics `json:"statistics"`

	// Summary condenses the run for report headers.
	Summary Summary `json:"summary"`

	// FileAnalyses holds the per-file detail, in corpus traversal order.
	FileAnalyses []FileAnalysis `json:"fileAnalyses"`

	// Recommendations are the aggregated bulk-removal suggestions.
	Recommendations []Recommendation `json:"recommendations"`
}

// BuildSummary derives the Summary from the statistics and file analyses.
// TotalFiles includes files that errored out, because they were selected
// even though they produced no analysis.
func (r *AnalysisReport) BuildSummary() {
	filesWithUnused := 0
	for _, fa := range r.FileAnalyses {
		if len(fa.UnusedImports) > 0 {
			filesWithUnused++
		}
	}

	r.Summary = Summary{
		TotalFiles:             r.Statistics.FilesAnalyzed + r.Statistics.Errors,
		FilesWithUnusedImports: filesWithUnused,
		TotalUnusedImports:     r.Statistics.UnusedImportsFound,
		SafeToRemove:           r.Statistics.SafeToRemove,
		RequiresReview:         r.Statistics.RequiresReview,
	}
}

// AllSafeRemovals returns every SafeRemoval finding across the report,
// in traversal order. This is the exact set the cleanup collaborator is
// restricted to.
func (r *AnalysisReport) AllSafeRemovals() []UnusedImport {
	var removals []UnusedImport
	for _, fa := range r.FileAnalyses {
		removals = append(removals, fa.SafeRemovals...)
	}
	return removals
}
