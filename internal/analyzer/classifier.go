package analyzer

import (
	"github.com/importsweep/importsweep/internal/config"
	"github.com/importsweep/importsweep/internal/model"
)

// Classifier decides how confidently an unused import can be removed.
type Classifier struct {
	safeModules []string
}

// NewClassifier returns a Classifier that treats modules matching the given
// allowlist patterns as safe to remove mechanically.
func NewClassifier(safeModules []string) *Classifier {
	return &Classifier{safeModules: safeModules}
}

// Classify labels an import declaration none of whose symbols have detected
// usage. Declarations from type-only paths and declarations that bind no
// symbols always land in NeedsReview: detection confidence is too low for
// the first, and removing the second can drop side effects.
func (c *Classifier) Classify(decl *model.ImportDeclaration) model.Classification {
	if config.IsTypeOnlyPath(decl.ModulePath) {
		return model.NeedsReview
	}
	if len(decl.Symbols) == 0 {
		return model.NeedsReview
	}
	for _, pattern := range c.safeModules {
		if config.MatchModule(pattern, decl.ModulePath) {
			return model.SafeRemoval
		}
	}
	return model.NeedsReview
}
