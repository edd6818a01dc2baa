package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var (
	base  zerolog.Logger
	ready atomic.Bool
	mu    sync.Mutex
)

// Init configures the global JSON logger.
//
//   - level: debug|info|warn|error (anything else means info)
//   - pretty: human-readable console output instead of JSON
func Init(level string, pretty bool) {
	mu.Lock()
	defer mu.Unlock()
	initLocked(level, pretty)
}

func initLocked(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	ready.Store(true)
}

// L returns the global logger. Falls back to info/JSON if Init was never called.
func L() *zerolog.Logger {
	if !ready.Load() {
		mu.Lock()
		if !ready.Load() {
			initLocked("info", false)
		}
		mu.Unlock()
	}
	return &base
}

// WithRequestID returns a copy of ctx whose logger is tagged with request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	l := L().With().Str("request_id", id).Logger()
	return context.WithValue(ctx, ctxKey{}, &l)
}

// Ctx returns the request-scoped logger stored in ctx, or the global one.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
			return l
		}
	}
	return L()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
