// Package logger holds the process-wide zerolog logger. Call Init once in
// main, then derive per-component loggers with Component.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	// Level is the minimum level (trace, debug, info, warn, error).
	// Unrecognised or empty values fall back to info.
	Level string
	// Pretty switches to the human console writer. Production runs emit JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu   sync.Mutex
	root *zerolog.Logger
)

// Init builds the root logger. The first call wins; later calls return the
// existing logger so libraries cannot reconfigure it behind main's back.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return *root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "founderflow").Logger()
	root = &l
	return l
}

// Get returns the root logger. Panics if Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		panic("logger: Get called before Init")
	}
	return *root
}

// Component returns a child logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset clears the root logger. Test use only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
}
