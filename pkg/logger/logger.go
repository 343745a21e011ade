package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. It writes JSON to stdout until Init is called.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type ctxKey struct{}

// Init configures the global logger. Development mode uses the console writer.
func Init(service string, development bool) {
	var out io.Writer = os.Stdout
	if development {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	zerolog.TimeFieldFormat = time.RFC3339
	Logger = zerolog.New(out).With().Timestamp().Str("service", service).Logger()
}

// SetLevel accepts zerolog level names and falls back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger or the global one.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return &l
	}
	return &Logger
}

var dedup = &deduplicator{
	flushDelay: 2 * time.Second,
	emit: func(msg string, count int) {
		ev := Logger.Warn()
		if count > 1 {
			ev = ev.Int("repeated", count)
		}
		ev.Msg(msg)
	},
}

// deduplicator collapses identical consecutive messages into one entry with a count.
type deduplicator struct {
	mu         sync.Mutex
	lastMsg    string
	count      int
	flushDelay time.Duration
	timer      *time.Timer
	emit       func(msg string, count int)
}

func (d *deduplicator) flush() {
	if d.count == 0 {
		return
	}
	d.emit(d.lastMsg, d.count)
	d.count = 0
	d.lastMsg = ""
}

func (d *deduplicator) add(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if msg != d.lastMsg {
		d.flush()
		d.lastMsg = msg
	}
	d.count++
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.flushDelay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.flush()
	})
}

// Dedup logs a warning, folding repeats that arrive within the flush window.
// Used for noisy adapter failures that recur every search.
func Dedup(format string, args ...any) {
	dedup.add(fmt.Sprintf(format, args...))
}
