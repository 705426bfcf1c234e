package logger

import (
	"context"
	"log/slog"
	"runtime"
)

type sourceHandler struct {
	handler    slog.Handler
	withSource map[slog.Level]bool
}

// NewSourceHandler wraps a handler so that source location is attached only
// for the given levels. The wrapped handler must be configured with
// AddSource: false; this wrapper injects the source attribute itself.
func NewSourceHandler(handler slog.Handler, levels ...slog.Level) slog.Handler {
	withSource := make(map[slog.Level]bool, len(levels))
	for _, level := range levels {
		withSource[level] = true
	}
	return &sourceHandler{handler: handler, withSource: withSource}
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.withSource[r.Level] {
		// Skip this frame plus the slog internals above it.
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		fs := runtime.CallersFrames(pcs[:])
		f, _ := fs.Next()

		r.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: f.Function,
				File:     f.File,
				Line:     f.Line,
			}),
		})
	}
	return h.handler.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{handler: h.handler.WithAttrs(attrs), withSource: h.withSource}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{handler: h.handler.WithGroup(name), withSource: h.withSource}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
