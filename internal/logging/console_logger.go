package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// ConsoleLogger writes log lines to a writer.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	tag     string
	mu      *sync.Mutex // shared with loggers derived by WithRunID
}

// NewWriterLogger creates a ConsoleLogger writing to w.
// If verbose is false, Verbose() calls are no-ops.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	if w == nil {
		w = io.Discard
	}
	return &ConsoleLogger{out: w, verbose: verbose, mu: &sync.Mutex{}}
}

// WithRunID returns a logger sharing the same writer whose lines are
// prefixed with the first eight characters of id.
func (l *ConsoleLogger) WithRunID(id string) msgcat.Logger {
	if len(id) > 8 {
		id = id[:8]
	}
	return &ConsoleLogger{out: l.out, verbose: l.verbose, tag: "[" + id + "] ", mu: l.mu}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, level+l.tag+msg+"\n")
}

var _ msgcat.Logger = (*ConsoleLogger)(nil)
