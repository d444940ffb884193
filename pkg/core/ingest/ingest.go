// Package ingest parses uploaded spreadsheets into the three-column line
// item table the ratio engine consumes: label, prior-year value,
// current-year value. Structural problems (wrong column count, unreadable
// workbook) are this layer's concern and surface as *StructureError so the
// API can report them as data errors rather than crashes.
package ingest

import "fmt"

// RequiredColumns is the recognized table shape: label | prior | current.
const RequiredColumns = 3

// StructureError reports a malformed upload. It is a user-facing data
// error, distinct from engine failures.
type StructureError struct {
	Detail string
}

func (e *StructureError) Error() string {
	return "data structure error: " + e.Detail
}

func structureErrorf(format string, args ...interface{}) *StructureError {
	return &StructureError{Detail: fmt.Sprintf(format, args...)}
}
