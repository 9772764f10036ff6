// Package config provides configuration structures and utilities for
// importsweep. It defines the corpus selection options, the preserve-pattern
// tables and safe-removal allow-list consumed by the analyzer, and the
// external tool command lines used by the cleanup and validation phases.
package config
