// Package debug carries the --debug flag through context and tunes the
// process logger to match.
package debug

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// Attach marks ctx with the debug flag so lower layers can decide
// whether to emit wire-level logging.
func Attach(ctx context.Context, on bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, on)
}

// Enabled reports whether ctx carries an active debug flag.
func Enabled(ctx context.Context) bool {
	on, _ := ctx.Value(ctxKey{}).(bool)
	return on
}

// ConfigureLogger installs a text slog handler on stderr. Request and
// response logging in the API client fires at debug level only, so the
// warn default keeps normal CLI output quiet.
func ConfigureLogger(on bool) {
	level := slog.LevelWarn
	if on {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
