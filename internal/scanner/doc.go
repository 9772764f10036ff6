// Package scanner discovers and reads corpus source files.
// Discovery is deterministic (stable lexical directory traversal) because
// the ordering feeds progress reporting and the aggregator's stable
// recommendation ordering. Reading tolerates UTF-8 BOMs and UTF-16
// encoded files, which show up surprisingly often in Windows-edited
// TypeScript corpora.
package scanner
