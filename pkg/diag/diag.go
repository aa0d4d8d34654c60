// Package diag is the compiler's diagnostic engine. It accumulates
// structured {level, location, message} records; it never formats or prints
// anything itself — rendering to a human-readable stream is a driver
// concern (see cmd/safec), consistent with spec.md's decision to keep
// "diagnostic rendering beyond the structured record format" external.
package diag

import (
	"fmt"

	"github.com/safec-org/safec/pkg/source"
)

// Level classifies a diagnostic record.
type Level int

// The four diagnostic levels, in increasing severity.
const (
	Note Level = iota
	Warning
	Error
	Fatal
)

// String renders the level the way it appears in a record's textual form.
func (l Level) String() string {
	switch l {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Record is a single structured diagnostic entry.
type Record struct {
	Level   Level
	Loc     source.Location
	Message string
}

// String renders a record as "<file>:<line>:<col>: <level>: <message>", the
// format specified in spec.md §6.
func (r Record) String() string {
	return fmt.Sprintf("%s: %s: %s", r.Loc, r.Level, r.Message)
}

// Engine is a single-writer queue of diagnostic records for one translation
// unit. It is never shared across units (spec.md §5): the driver constructs
// one Engine per compilation.
type Engine struct {
	records    []Record
	errorCount int
}

// NewEngine constructs an empty diagnostic engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Note appends an informational record. Never affects error status.
func (e *Engine) Note(loc source.Location, format string, args ...any) {
	e.emit(Note, loc, format, args...)
}

// Warn appends a warning record. Never affects error status.
func (e *Engine) Warn(loc source.Location, format string, args ...any) {
	e.emit(Warning, loc, format, args...)
}

// Error appends an error record and increments the error counter. Processing
// of the current stage continues, to maximize diagnostic recall.
func (e *Engine) Error(loc source.Location, format string, args ...any) {
	e.emit(Error, loc, format, args...)
	e.errorCount++
}

// Fatal appends a fatal record and increments the error counter. Callers are
// expected to abort the current stage immediately after calling Fatal; the
// engine itself does not unwind anything.
func (e *Engine) Fatal(loc source.Location, format string, args ...any) {
	e.emit(Fatal, loc, format, args...)
	e.errorCount++
}

func (e *Engine) emit(level Level, loc source.Location, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	e.records = append(e.records, Record{Level: level, Loc: loc, Message: msg})
}

// HasErrors reports whether any Error or Fatal record has been recorded.
func (e *Engine) HasErrors() bool {
	return e.errorCount > 0
}

// ErrorCount returns the number of Error and Fatal records recorded so far.
func (e *Engine) ErrorCount() int {
	return e.errorCount
}

// Records returns every diagnostic recorded so far, in emission order.
func (e *Engine) Records() []Record {
	return e.records
}
