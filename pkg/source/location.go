// Package source provides the location tracking shared by every later stage
// of the pipeline: tokens, AST nodes and diagnostics all carry a Location.
package source

import "fmt"

// Location identifies a single point in a named source file by 1-based line
// and column. The zero value is not a valid location; use NewLocation or
// Unknown.
type Location struct {
	File   string
	Line   uint
	Column uint
}

// Unknown is returned when no better location is available (e.g. for
// synthesized nodes produced by monomorphization before they are re-pointed
// at their originating call site).
var Unknown = Location{File: "<unknown>", Line: 0, Column: 0}

// NewLocation constructs a Location from a file name and 1-based line/column.
func NewLocation(file string, line, column uint) Location {
	return Location{File: file, Line: line, Column: column}
}

// String renders the location in the "file:line:col" form used throughout
// diagnostic records.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsUnknown reports whether this location carries no useful position.
func (l Location) IsUnknown() bool {
	return l.Line == 0
}
