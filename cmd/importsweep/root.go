// Package main provides the entry point for the importsweep CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for importsweep.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importsweep",
		Short: "Unused-import analysis and cleanup for JavaScript/TypeScript corpora",
		Long: `importsweep scans a JavaScript/TypeScript source tree for unused imports,
classifies how safely each finding can be removed, and orchestrates external
cleanup and validation tools around the analysis.

A run is a session of up to three phases: analysis, cleanup, and validation.
Each phase persists its report to the session directory, so a later run can
resume from an earlier analysis.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
