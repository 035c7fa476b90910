package log

import (
	"context"
	"log/slog"

	slogcontext "github.com/veqryn/slog-context"
)

// WithContext returns a copy of ctx carrying l.
// A zero value Logger leaves ctx unchanged.
func WithContext(ctx context.Context, l Logger) context.Context {
	if l.Logger == nil {
		return ctx
	}

	return slogcontext.NewCtx(ctx, l.Logger)
}

// FromContext returns the Logger carried by ctx, or [Default] if ctx carries
// none. The returned Logger shares the default configuration for
// [Logger.Wrap], [Logger.Level], and [Logger.Format].
func FromContext(ctx context.Context) Logger {
	def := Default()

	if ctx == nil {
		return def
	}

	sl := slogcontext.FromCtx(ctx)
	if sl == nil || sl == slog.Default() {
		return def
	}

	return Logger{Logger: sl, config: def.config}
}
