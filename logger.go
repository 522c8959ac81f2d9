package textpath

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silent is the logger installed until SetLogger is called. Its handler
// reports every level as disabled, so log calls cost no formatting.
var silent = slog.New(nopHandler{})

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes the package diagnostics to l; nil silences them again.
// It may be called while other goroutines parse, sample or classify.
//
// Messages are prefixed "textpath:". At Warn the package reports
// malformed path data (with the byte offset and command) and configuration
// values it replaced with defaults. At Debug it reports fallback sampling
// of paths without length and each reason a classification ends without a
// match: too few points, no extent, no reading direction, or a candidate
// rejected by the confidence and error gate.
//
// Example:
//
//	textpath.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger the package writes to.
func Logger() *slog.Logger {
	return current.Load()
}
