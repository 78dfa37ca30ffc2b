package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// ConsoleLogger writes log lines to stderr, or to the writer it was built with.
// Safe for concurrent use.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger on stderr. Verbose lines are only
// written when verbose is true.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewWriterLogger(os.Stderr, verbose)
}

// NewWriterLogger creates a ConsoleLogger writing to out.
func NewWriterLogger(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: out, verbose: verbose}
}

// Verbose logs resolution details such as which subject and property were read.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

var _ sflink.Logger = (*ConsoleLogger)(nil)
