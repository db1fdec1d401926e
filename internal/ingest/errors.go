package ingest

import "fmt"

// ExtractionError represents a failure to extract text from uploaded content
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
