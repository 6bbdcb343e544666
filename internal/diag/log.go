// Package diag implements the compiler's diagnostics, a leveled
// logger that writes lines of the exact form
// "LEVEL: path:line:column: message" to an arbitrary writer (stderr
// in the CLI). It deliberately does not use a third-party structured
// logger: see SPEC_FULL.md section 5.2 for why.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/flatbyte/bfc/internal/srcpos"
)

// Level is a diagnostic severity, ordered most to least severe.
type Level int

const (
	Fatal Level = iota
	Error
	Warning
	Info
	Debug
)

func (l Level) String() string {
	switch l {
	case Fatal:
		return "FATAL"
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled diagnostics to Out. Debug-level messages are
// only emitted when Debug is true, mirroring the teacher's
// compilerDebug-gated fmt.Fprintf calls.
type Logger struct {
	Out   io.Writer
	Debug bool
}

// New returns a Logger writing to os.Stderr with debug output
// disabled.
func New() *Logger {
	return &Logger{Out: os.Stderr}
}

// Logf emits a diagnostic with no source position, used for errors
// that precede source loading (missing file, read failure).
func (lg *Logger) Logf(level Level, format string, args ...any) {
	if level == Debug && !lg.Debug {
		return
	}
	fmt.Fprintf(lg.Out, "%s: %s\n", level, fmt.Sprintf(format, args...))
}

// At emits a diagnostic positioned at src's current I, formatting
// line/column via src.LineCol.
func (lg *Logger) At(level Level, src *srcpos.Source, format string, args ...any) {
	if level == Debug && !lg.Debug {
		return
	}
	line, col := src.LineCol()
	fmt.Fprintf(lg.Out, "%s: %s:%d:%d: %s\n", level, src.Path, line, col, fmt.Sprintf(format, args...))
}

func (lg *Logger) FatalAt(src *srcpos.Source, format string, args ...any) {
	lg.At(Fatal, src, format, args...)
}

func (lg *Logger) ErrorAt(src *srcpos.Source, format string, args ...any) {
	lg.At(Error, src, format, args...)
}

func (lg *Logger) WarnAt(src *srcpos.Source, format string, args ...any) {
	lg.At(Warning, src, format, args...)
}

func (lg *Logger) InfoAt(src *srcpos.Source, format string, args ...any) {
	lg.At(Info, src, format, args...)
}

func (lg *Logger) DebugAt(src *srcpos.Source, format string, args ...any) {
	lg.At(Debug, src, format, args...)
}
