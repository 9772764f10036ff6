// Package model defines the data structures shared across importsweep:
// source files, import declarations and their symbols, usage evidence,
// removal-safety classifications, per-file analyses, aggregated
// recommendations, and the sealed phase and session reports that are
// persisted at run boundaries.
package model
