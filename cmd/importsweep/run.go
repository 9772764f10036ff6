package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/importsweep/importsweep/internal/analyzer"
	"github.com/importsweep/importsweep/internal/config"
	"github.com/importsweep/importsweep/internal/database"
	"github.com/importsweep/importsweep/internal/log"
	"github.com/importsweep/importsweep/internal/model"
	"github.com/importsweep/importsweep/internal/phase"
	"github.com/importsweep/importsweep/internal/report"
	"github.com/importsweep/importsweep/internal/scanner"
	"github.com/importsweep/importsweep/internal/tools"
	"github.com/importsweep/importsweep/internal/treesitter"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [phase...]",
		Short: "Run analysis, cleanup, and validation phases over a corpus",
		Long: `Run executes cleanup phases over a JavaScript/TypeScript corpus.

Without arguments, all three phases run in order: analysis, cleanup,
validation. Naming phases as arguments runs only those phases, in the
order given. The cleanup phase requires an analysis report, either from
the same run or from a resumed session directory (--session).

Phase failures are isolated: a failed phase is recorded in the session
report and later phases still run. The session itself is marked failed
when any phase fails.

Examples:
  # Run all phases over the current directory
  importsweep run

  # Analysis only, over a specific corpus
  importsweep run analysis --root ./src

  # Resume an earlier analysis and run cleanup against it
  importsweep run cleanup --session ~/.local/share/importsweep/sessions/20250610-093000

  # Use the parse-tree oracle instead of pattern matching
  importsweep run analysis --oracle treesitter

  # Output JSON session report to a file
  importsweep run --json --output report.json

Configuration file (.importsweep) example:
  extensions: [".ts", ".tsx"]
  ignoreDirs: ["node_modules", "vendor"]
  safeRemoval: ["lodash", "@mui/icons-material"]
  tools:
    checker: ["npx", "tsc", "--noEmit", "--strict"]`,
		Args: cobra.ArbitraryArgs,
		RunE: runRunCmd,
	}

	// Corpus flags
	cmd.Flags().StringP("root", "r", ".",
		"Corpus root directory to analyze")
	cmd.Flags().String("oracle", config.OracleRegex,
		"Usage-detection oracle: regex or treesitter")

	// Session flags
	cmd.Flags().StringP("session", "s", "",
		"Resume an existing session directory instead of creating a new one")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .importsweep in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON session report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown session report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Root, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runSession(ctx, cfg, args, logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Flags win over the config file for the values both
// can set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load settings from the config file before flags so explicit flags
	// can override them. If the user named a config file, it must exist.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Root, err = cmd.Flags().GetString("root")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("oracle") {
		cfg.Oracle, err = cmd.Flags().GetString("oracle")
		if err != nil {
			return nil, err
		}
	}

	cfg.SessionDir, err = cmd.Flags().GetString("session")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Always save session summaries to the XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runSession wires the session components together and executes the
// requested phases.
func runSession(ctx context.Context, cfg *config.Config, phases []string, logger *slog.Logger) error {
	start := time.Now()

	logger.Info("starting session",
		"root", cfg.Root,
		"oracle", cfg.Oracle,
		"phases", phases,
	)

	session, err := phase.NewSession(cfg.NewSessionDir(start))
	if err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	oracle, closeOracle := newOracle(cfg)
	defer closeOracle()

	walker := scanner.NewWalker(cfg.Root,
		scanner.WithExtensions(cfg.Extensions),
		scanner.WithIgnoreDirs(cfg.IgnoreDirs),
		scanner.WithWalkerLogger(logger),
	)

	fileAnalyzer := analyzer.NewFileAnalyzer(
		cfg.Preserve,
		oracle,
		analyzer.NewClassifier(cfg.SafeRemovalModules),
		analyzer.WithAnalyzerLogger(logger),
	)

	analysisRunner := analyzer.NewRunner(walker, fileAnalyzer,
		analyzer.WithRunnerLogger(logger),
		analyzer.WithProgressInterval(cfg.ProgressInterval),
	)

	// External collaborators run in the corpus root so relative paths in
	// their output match the analysis report.
	toolRunner := tools.NewRunner(
		tools.WithWorkDir(cfg.Root),
		tools.WithToolLogger(logger),
	)

	orchestrator := phase.NewOrchestrator(session,
		[]phase.Phase{
			phase.NewAnalysisPhase(analysisRunner),
			phase.NewCleanupPhase(tools.NewMutator(toolRunner, cfg.CleanupCommand)),
			phase.NewValidationPhase(tools.NewValidator(toolRunner, cfg.LinterCommand, cfg.CheckerCommand)),
		},
		phase.WithOrchestratorLogger(logger),
	)

	sessionReport, err := orchestrator.Execute(ctx, phases)
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	fmt.Printf("Session completed in %s (reports in %s)\n\n",
		time.Since(start).Round(time.Millisecond), session.Dir)

	if err := outputReport(cfg, sessionReport); err != nil {
		logger.Error("report output failed", "error", err)
	}

	if err := saveSessionReport(ctx, cfg, sessionReport, logger); err != nil {
		logger.Error("failed to save session report", "error", err)
	}

	// Phase failures are advisory at the process level: they are recorded
	// in the session report, and only orchestration-level errors exit
	// non-zero.
	if sessionReport.SessionInfo.Status == model.SessionFailed {
		fmt.Fprintf(os.Stderr, "Session finished with failed phases (see %s)\n", session.Dir)
	}

	return nil
}

// newOracle builds the configured usage oracle. The returned close function
// releases parse trees for the tree-sitter oracle and is a no-op otherwise.
func newOracle(cfg *config.Config) (analyzer.UsageOracle, func()) {
	if cfg.Oracle == config.OracleTreeSitter {
		o := treesitter.NewOracle()
		return o, o.Close
	}
	return analyzer.NewRegexOracle(), func() {}
}

// outputReport outputs the session report in the requested format.
func outputReport(cfg *config.Config, sessionReport *model.SessionReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.WriteSession(sessionReport)
	return err
}

// saveSessionReport saves the session report to the history database,
// keyed by the absolute corpus root.
func saveSessionReport(ctx context.Context, cfg *config.Config, sessionReport *model.SessionReport, logger *slog.Logger) error {
	if !cfg.SaveToDB {
		return nil
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		root = cfg.Root
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveSessionReport(ctx, root, sessionReport); err != nil {
		return fmt.Errorf("failed to save session report: %w", err)
	}

	logger.Info("session report saved to database", "root", root, "dir", cfg.DBDir)
	return nil
}
