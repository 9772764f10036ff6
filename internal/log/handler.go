package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// PathTrimHandler wraps an slog.Handler and rewrites absolute corpus paths
// in string attributes into corpus-relative form. Session reports and logs
// are frequently attached to pull requests, and absolute paths would both
// differ per machine and expose local usernames.
//
// Design decision: We use a handler wrapper rather than trimming at each
// call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay free to log whatever path form they hold
type PathTrimHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// root is the absolute corpus root, with a trailing separator,
	// stripped from string attribute values.
	root string
}

// NewPathTrimHandler creates a PathTrimHandler wrapping the given handler.
// root is the absolute corpus root directory; an empty root disables
// rewriting. If handler is nil, the returned handler uses
// slog.Default().Handler().
func NewPathTrimHandler(handler slog.Handler, root string) *PathTrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if root != "" && !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return &PathTrimHandler{handler: handler, root: root}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathTrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying
// handler.
func (h *PathTrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *PathTrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &PathTrimHandler{handler: h.handler.WithAttrs(trimmedAttrs), root: h.root}
}

// WithGroup returns a new handler with the given group name.
func (h *PathTrimHandler) WithGroup(name string) slog.Handler {
	return &PathTrimHandler{handler: h.handler.WithGroup(name), root: h.root}
}

// trimAttr rewrites a single attribute, recursively handling groups.
func (h *PathTrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if h.root == "" || a.Value.Kind() != slog.KindString {
		return a
	}

	val := a.Value.String()
	if !strings.Contains(val, h.root) {
		return a
	}
	return slog.String(a.Key, strings.ReplaceAll(val, h.root, ""))
}

// NewLogger creates a slog.Logger writing text records to w with corpus
// paths rewritten relative to root.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - root: The absolute corpus root directory, or empty to disable trimming
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, root string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewPathTrimHandler(textHandler, root))
}
