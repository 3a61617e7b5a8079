// Package xlog is a minimal, dependency-free logger used internally
// by the AnalysisManager to log each cache build at Debug level. No
// package of the library logs at Trace level. Per spec.md §5 and §7 the library
// itself never logs above debug level, so this package has no Info,
// Warning, or Error — only Debug and Trace, both silent unless a
// caller explicitly opts in.
//
// Adapted from the teacher's callgraphutil.Logger, trimmed to the
// levels this module's error-handling design actually calls for.
package xlog

import (
	"fmt"
	"io"
	"os"
)

// Level controls how much a Logger emits.
type Level int

const (
	// LevelSilent emits nothing. The zero value, and the default for
	// any AnalysisManager that doesn't opt into logging.
	LevelSilent Level = iota
	// LevelDebug emits one line per cache build (which analysis, for
	// which function/module).
	LevelDebug
	// LevelTrace additionally emits messages logged with Trace.
	LevelTrace
)

// Logger is a small, prefix-scoped sink for debug/trace messages.
type Logger struct {
	level  Level
	writer io.Writer
	prefix string
}

// New creates a Logger at the given level, writing to w. A nil w
// defaults to os.Stderr; LevelSilent never writes regardless of w.
func New(level Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{level: level, writer: w}
}

// Discard is a ready-made silent logger, used as the default for any
// AnalysisManager constructed without an explicit logger.
func Discard() *Logger {
	return New(LevelSilent, io.Discard)
}

// WithPrefix returns a derived Logger that prefixes every message with
// prefix (in addition to any existing prefix), e.g. a per-function
// logger under the manager's top-level logger.
func (l *Logger) WithPrefix(prefix string) *Logger {
	newPrefix := prefix
	if l.prefix != "" {
		newPrefix = l.prefix + "/" + prefix
	}
	return &Logger{level: l.level, writer: l.writer, prefix: newPrefix}
}

// Debug logs a cache build/miss at Debug level or above.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.log("debug", format, args...)
	}
}

// Trace logs fine-grained iteration detail at Trace level.
func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LevelTrace {
		l.log("trace", format, args...)
	}
}

func (l *Logger) log(tag, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		fmt.Fprintf(l.writer, "[%s] %s: %s\n", tag, l.prefix, msg)
		return
	}
	fmt.Fprintf(l.writer, "[%s] %s\n", tag, msg)
}
