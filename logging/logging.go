// Package logging provides a small leveled logger that is passed around
// explicitly. There is no package-level sink: every component that wants to
// log receives a *Logger, and a nil logger silently discards everything,
// which keeps the comparison engine side-effect-free by default.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Logger writes leveled, timestamped lines to a single destination. Safe for
// concurrent use. All methods are no-ops on a nil receiver.
type Logger struct {
	mu    sync.Mutex
	out   *log.Logger
	file  *os.File
	debug bool
}

// New creates a logger writing to w. Debug messages are dropped unless debug
// is set.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{
		out:   log.New(w, "", log.LstdFlags),
		debug: debug,
	}
}

// NewFileLogger creates a logger appending to the given file, creating it if
// needed. The caller owns the logger and should Close it when done.
func NewFileLogger(path string, debug bool) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		out:   log.New(f, "", log.LstdFlags),
		file:  f,
		debug: debug,
	}
	l.out.Printf("--- iconcompare log started at %s ---", time.Now().Format(time.RFC3339))
	return l, nil
}

// Close flushes and closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	l.out.Printf("--- iconcompare log closed at %s ---", time.Now().Format(time.RFC3339))
	err := l.file.Close()
	l.file = nil
	return err
}

// Debugf logs a debug message when debug mode is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.debug {
		l.out.Printf(format, args...)
	}
}

// Infof logs an information message.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("INFO: "+format, args...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("WARNING: "+format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("ERROR: "+format, args...)
}

// PairProcessed records the outcome of one comparison in the log.
func (l *Logger) PairProcessed(large, small string, err error) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.out.Printf("FAILED: %s vs %s - %v", large, small, err)
	} else {
		l.out.Printf("COMPARED: %s vs %s", large, small)
	}
}
