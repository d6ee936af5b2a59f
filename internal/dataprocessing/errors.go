package dataprocessing

import (
	"fmt"
	"strings"
)

// LoadError reports a source that is missing, unreadable, or contains a
// value a designated column cannot represent. Any LoadError aborts the
// whole load; no partial table set is ever surfaced.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports required columns absent from a source header. Like
// LoadError it is fatal at load time.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: missing required columns %s",
		e.Source, strings.Join(e.Missing, ", "))
}
