// Package treesitter provides a parse-tree-backed usage oracle.
//
// It is the precise alternative to the pattern-matching oracle in the
// analyzer package: identifiers are resolved against a real syntax tree, so
// mentions inside comments and string literals can never count as usage and
// pattern heuristics are unnecessary. The JavaScript grammar covers plain
// JS and JSX; TypeScript-only syntax inside a file can degrade a parse, in
// which case the oracle still reports whatever identifiers the tree
// recovered.
package treesitter
