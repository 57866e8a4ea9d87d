// Package debug provides conditional debug logging for dsv.
//
// Debug logging is enabled by setting the DSV_DEBUG environment variable:
//
//	DSV_DEBUG=1 dsv --robot-tree --values 5,2,8
//
// When enabled, debug messages are written to stderr with timestamps. The
// TUI redirects them to a file with SetOutput so they do not tear the
// alternate screen. When disabled (default), all functions are no-ops.
package debug

import (
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const prefix = "[DSV_DEBUG] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("DSV_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
		return
	}
	logger.SetOutput(w)
}

func active() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if l := active(); l != nil {
		l.Printf(format, args...)
	}
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if l := active(); l != nil {
		l.Printf("%s took %v", name, d)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("export")()
func LogEnterExit(name string) func() {
	l := active()
	if l == nil {
		return func() {}
	}
	l.Printf("-> %s", name)
	start := time.Now()
	return func() {
		l.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if l := active(); l != nil {
		l.Printf("%s: %T = %+v", name, v, v)
	}
}
