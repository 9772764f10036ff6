package analyzer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/importsweep/importsweep/internal/config"
	"github.com/importsweep/importsweep/internal/model"
	"github.com/importsweep/importsweep/internal/scanner"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestRunner(root string) *Runner {
	walker := scanner.NewWalker(root,
		scanner.WithExtensions(config.DefaultExtensions),
		scanner.WithIgnoreDirs(config.DefaultIgnoreDirs),
	)
	return NewRunner(walker, newTestAnalyzer())
}

func TestRunnerRun(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{
		"src/a.tsx": "import { Button } from 'lucide-react';\nconst el = <Button />;\n",
		"src/b.tsx": "import { Button } from 'lucide-react';\nexport const n = 1;\n",
		"src/c.tsx": "import { Icon } from 'lucide-react';\nexport const n = 2;\n",
		"src/d.tsx": "import { Gauge } from 'lucide-react';\nexport const n = 3;\n",
		"src/e.ts":  "import { Logger } from 'utils/logger';\nexport const n = 4;\n",
	})

	report, err := newTestRunner(root).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := report.Statistics
	if stats.FilesAnalyzed != 5 {
		t.Errorf("FilesAnalyzed = %d, want 5", stats.FilesAnalyzed)
	}
	if stats.ImportsAnalyzed != 5 {
		t.Errorf("ImportsAnalyzed = %d, want 5", stats.ImportsAnalyzed)
	}
	if stats.UnusedImportsFound != 4 {
		t.Errorf("UnusedImportsFound = %d, want 4", stats.UnusedImportsFound)
	}
	if stats.SafeToRemove != 3 {
		t.Errorf("SafeToRemove = %d, want 3", stats.SafeToRemove)
	}
	if stats.RequiresReview != 1 {
		t.Errorf("RequiresReview = %d, want 1", stats.RequiresReview)
	}
	if stats.Errors != 0 {
		t.Errorf("Errors = %d, want 0", stats.Errors)
	}

	if report.Summary.TotalFiles != 5 {
		t.Errorf("Summary.TotalFiles = %d, want 5", report.Summary.TotalFiles)
	}
	if report.Summary.FilesWithUnusedImports != 4 {
		t.Errorf("Summary.FilesWithUnusedImports = %d, want 4", report.Summary.FilesWithUnusedImports)
	}

	// lucide-react is unused in b, c, and d: exactly one bulk recommendation.
	if len(report.Recommendations) != 1 {
		t.Fatalf("Recommendations = %d, want 1", len(report.Recommendations))
	}
	rec := report.Recommendations[0]
	if rec.Module != "lucide-react" || rec.AffectedFiles != 3 || rec.Priority != model.PriorityHigh {
		t.Errorf("unexpected recommendation: %+v", rec)
	}

	if got := len(report.AllSafeRemovals()); got != 3 {
		t.Errorf("AllSafeRemovals() = %d, want 3", got)
	}
}

func TestRunnerIgnoresDirectoriesAndForeignExtensions(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{
		"src/a.ts":               "import { Logger } from 'utils/logger';\n",
		"node_modules/dep/ix.ts": "import { x } from 'mod';\n",
		"src/readme.md":          "import { y } from 'mod';\n",
		"dist/bundle.js":         "import { z } from 'mod';\n",
	})

	report, err := newTestRunner(root).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Statistics.FilesAnalyzed != 1 {
		t.Errorf("FilesAnalyzed = %d, want 1", report.Statistics.FilesAnalyzed)
	}
}

func TestRunnerDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{
		"a.tsx": "import { Button } from 'lucide-react';\n",
		"b.tsx": "import { Icon } from 'lucide-react';\nconst el = <Icon />;\n",
		"c.ts":  "import { Logger } from 'utils/logger';\n",
	})

	first, err := newTestRunner(root).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := newTestRunner(root).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Timestamps differ between runs; compare everything else.
	first.Timestamp = second.Timestamp
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("reports differ across runs:\n%s\n%s", a, b)
	}
}

func TestRunnerMissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := newTestRunner(filepath.Join(t.TempDir(), "absent")).Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want traversal error")
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{"a.ts": "import { x } from 'mod';\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestRunner(root).Run(ctx); err == nil {
		t.Error("Run() error = nil, want context error")
	}
}
