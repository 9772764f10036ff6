package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// Walker discovers corpus files in deterministic lexical order.
// It selects files by extension and skips ignored directory names wherever
// they appear in the tree.
type Walker struct {
	// root is the corpus root directory.
	root string

	// extensions holds the selected file extensions, lowercased.
	extensions map[string]bool

	// ignoreDirs holds directory names to skip, at any depth.
	ignoreDirs map[string]bool

	// logger is used for structured logging during traversal.
	logger *slog.Logger
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithExtensions sets the file extensions to select (e.g. ".ts", ".tsx").
func WithExtensions(exts []string) WalkerOption {
	return func(w *Walker) {
		w.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			w.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithIgnoreDirs sets directory names to skip during traversal.
func WithIgnoreDirs(dirs []string) WalkerOption {
	return func(w *Walker) {
		w.ignoreDirs = make(map[string]bool, len(dirs))
		for _, dir := range dirs {
			w.ignoreDirs[dir] = true
		}
	}
}

// WithWalkerLogger sets a custom logger for the walker.
func WithWalkerLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker creates a Walker for the given corpus root.
func NewWalker(root string, opts ...WalkerOption) *Walker {
	w := &Walker{
		root:       root,
		extensions: map[string]bool{".ts": true, ".tsx": true, ".js": true, ".jsx": true},
		ignoreDirs: map[string]bool{"node_modules": true, ".git": true},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk returns the selected file paths relative to the corpus root, in
// stable lexical order. filepath.WalkDir guarantees lexical traversal, so
// two runs over an unchanged tree always produce the same slice.
//
// The error return is non-nil only when the root itself cannot be
// traversed; unreadable entries below the root are logged and skipped so
// one bad subtree cannot abort a corpus scan.
func (w *Walker) Walk(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == w.root {
				return err
			}
			w.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != w.root && w.ignoreDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		if !w.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			// Rel only fails when path is outside root, which WalkDir
			// never produces; treat it as a skipped entry if it happens.
			w.logger.Warn("skipping entry outside root", "path", path, "error", err)
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to traverse corpus root %s: %w", w.root, err)
	}

	w.logger.Debug("corpus discovery complete", "root", w.root, "files", len(files))
	return files, nil
}

// Root returns the corpus root directory.
func (w *Walker) Root() string {
	return w.root
}
