package model

// Recommendation type and priority values used in reports.
const (
	// TypeBulkRemoval marks a recommendation covering one module path's
	// unused-import pattern across multiple files.
	TypeBulkRemoval = "bulk-removal"

	// PriorityHigh means every occurrence in the group is SafeRemoval and
	// the bulk action can run without manual review.
	PriorityHigh = "high"

	// PriorityMedium means at least one occurrence in the group requires
	// review before the bulk action is safe.
	PriorityMedium = "medium"
)

// ModuleOccurrence records one file's unused symbols for a module path.
type ModuleOccurrence struct {
	// File is the path of the file with unused imports from the module.
	File string

	// Symbols are the unused symbol names in that file.
	Symbols []string

	// AllSafe is true when every unused symbol in this file for this
	// module is classified SafeRemoval.
	AllSafe bool
}

// ModuleGroup collects unused-import findings for one module path across
// the whole corpus. Groups are derived from the file analyses at the end
// of a run, never stored per-file.
type ModuleGroup struct {
	// Module is the shared module path.
	Module string

	// Occurrences holds one entry per affected file, in traversal order.
	Occurrences []ModuleOccurrence
}

// AffectedFiles returns the number of files in the group.
func (g *ModuleGroup) AffectedFiles() int {
	return len(g.Occurrences)
}

// AllSafe reports whether every occurrence across the group is SafeRemoval.
func (g *ModuleGroup) AllSafe() bool {
	for _, occ := range g.Occurrences {
		if !occ.AllSafe {
			return false
		}
	}
	return true
}

// Recommendation is an aggregated bulk suggestion for the human operator.
// Only module paths with unused imports in three or more files are promoted
// to a recommendation; smaller groups remain visible in per-file detail.
type Recommendation struct {
	// Type is the recommendation type, currently always TypeBulkRemoval.
	Type string `json:"type"`

	// Priority is PriorityHigh or PriorityMedium.
	Priority string `json:"priority"`

	// Module is the shared module path.
	Module string `json:"module"`

	// AffectedFiles is the number of files with unused imports from Module.
	AffectedFiles int `json:"affectedFiles"`

	// Description is a human-readable explanation of the finding.
	Description string `json:"description"`

	// Action is the suggested operator action.
	Action string `json:"action"`
}
