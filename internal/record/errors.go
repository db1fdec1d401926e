// Package record implements the CV record model: the validating constructor
// that turns loosely-typed input into a canonical CvRecord, plus the identity
// rules used to deduplicate list entries.
package record

import (
	"fmt"
	"strings"
)

// FieldError represents a single validation error at a specific field path
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports unrecoverable shape violations with the failing
// field paths. Missing optionals and legacy shapes are normalized instead of
// reported.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("record validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ParseError represents a failure to decode record JSON at all
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("record parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
