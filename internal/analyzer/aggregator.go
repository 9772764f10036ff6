package analyzer

import (
	"fmt"
	"sort"

	"github.com/importsweep/importsweep/internal/model"
)

// RecommendationThreshold is the minimum number of affected files before a
// module's unused-import pattern is promoted to a bulk recommendation.
// Smaller groups stay visible in per-file detail only.
const RecommendationThreshold = 3

// Aggregator folds per-file findings into cross-file bulk recommendations.
type Aggregator struct {
	threshold int
}

// NewAggregator returns an Aggregator with the default threshold.
func NewAggregator() *Aggregator {
	return &Aggregator{threshold: RecommendationThreshold}
}

// Aggregate groups unused imports by module path across the given file
// analyses and emits one recommendation per module path that crosses the
// threshold. Recommendations are ordered by affected-file count descending,
// ties broken by module path ascending, so the list is deterministic for
// identical input.
func (a *Aggregator) Aggregate(analyses []model.FileAnalysis) []model.Recommendation {
	groups := make(map[string]*model.ModuleGroup)
	var order []string

	for _, fa := range analyses {
		perModule := make(map[string]*model.ModuleOccurrence)
		var moduleOrder []string

		for _, u := range fa.UnusedImports {
			occ, ok := perModule[u.Module]
			if !ok {
				occ = &model.ModuleOccurrence{File: fa.File, AllSafe: true}
				perModule[u.Module] = occ
				moduleOrder = append(moduleOrder, u.Module)
			}
			occ.Symbols = append(occ.Symbols, u.Symbol)
			if u.Classification != model.SafeRemoval {
				occ.AllSafe = false
			}
		}

		for _, mod := range moduleOrder {
			g, ok := groups[mod]
			if !ok {
				g = &model.ModuleGroup{Module: mod}
				groups[mod] = g
				order = append(order, mod)
			}
			g.Occurrences = append(g.Occurrences, *perModule[mod])
		}
	}

	recs := make([]model.Recommendation, 0)
	for _, mod := range order {
		g := groups[mod]
		if g.AffectedFiles() < a.threshold {
			continue
		}

		priority := model.PriorityMedium
		action := "review each file before removing"
		if g.AllSafe() {
			priority = model.PriorityHigh
			action = "remove all unused imports from this module"
		}

		recs = append(recs, model.Recommendation{
			Type:          model.TypeBulkRemoval,
			Priority:      priority,
			Module:        g.Module,
			AffectedFiles: g.AffectedFiles(),
			Description:   fmt.Sprintf("%d files have unused imports from %q", g.AffectedFiles(), g.Module),
			Action:        action,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].AffectedFiles != recs[j].AffectedFiles {
			return recs[i].AffectedFiles > recs[j].AffectedFiles
		}
		return recs[i].Module < recs[j].Module
	})

	return recs
}
