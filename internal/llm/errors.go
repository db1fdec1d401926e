package llm

import "fmt"

// APICallError represents a failed call to the model provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LLM API error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LLM API error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ResponseError represents a provider response that could not be interpreted
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LLM response error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LLM response error: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
