package model

import (
	"encoding/json"
	"fmt"
)

// Classification is the removal-safety verdict for an imported symbol.
// Every extracted symbol receives exactly one of Used, SafeRemoval, or
// NeedsReview by the end of its file's analysis.
type Classification int

const (
	// Unclassified is the zero value before analysis assigns a verdict.
	// It never appears in a finished FileAnalysis.
	Unclassified Classification = iota

	// Used means the symbol is referenced in its file, or a preserve
	// pattern forces it to be treated as referenced.
	Used

	// SafeRemoval means the symbol is unused and its import can be
	// deleted automatically without manual review.
	SafeRemoval

	// NeedsReview means the symbol is unused but requires a human
	// decision before removal. This is the default for any unused import
	// that does not meet every safe-removal condition.
	NeedsReview
)

// String returns a human-readable representation of the classification.
func (c Classification) String() string {
	switch c {
	case Unclassified:
		return "unclassified"
	case Used:
		return "used"
	case SafeRemoval:
		return "safe-removal"
	case NeedsReview:
		return "needs-review"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the classification as its string form so that
// persisted reports are readable without the Go constant table.
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes the string form written by MarshalJSON.
// This is needed when the cleanup phase reloads a persisted analysis report.
func (c *Classification) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "unclassified":
		*c = Unclassified
	case "used":
		*c = Used
	case "safe-removal":
		*c = SafeRemoval
	case "needs-review":
		*c = NeedsReview
	default:
		return fmt.Errorf("unknown classification %q", s)
	}
	return nil
}
