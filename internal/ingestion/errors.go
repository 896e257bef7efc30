// Package ingestion loads raw skill observation data into the system.
// It is isolated so that new data sources (APIs, streaming, surveys)
// can be added later without touching analytics or graph logic.
package ingestion

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an input source.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]", strings.Join(e.MissingColumns, " "))
}

// ReadError represents a failure to read or parse an input source.
type ReadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.Source, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
