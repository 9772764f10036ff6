// Package main provides the entry point for the importsweep CLI.
//
// importsweep analyzes JavaScript/TypeScript corpora for unused imports,
// classifies how safely each one can be removed, and orchestrates external
// cleanup and validation tools around the analysis.
//
// Usage:
//
//	importsweep run
//	importsweep run analysis
//	importsweep compare --list
//
// See --help for all available options.
package main

// main is the entry point for importsweep.
func main() {
	Execute()
}
