// Package analyzer contains the per-file import analysis pipeline:
// extraction of import declarations, usage resolution behind a swappable
// oracle, removal-safety classification, and cross-file aggregation of
// bulk recommendations.
//
// Usage detection is deliberately approximate. The oracle scans text
// patterns rather than building a syntax tree; sanitization of comments
// and string literals plus exclusion of the import's own line bound the
// false-positive rate at the cost of some false negatives. That trade is
// acceptable because an "unused" finding is never acted on without the
// safety classifier's corroboration.
package analyzer
