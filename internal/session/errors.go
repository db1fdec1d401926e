package session

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError indicates an unknown or expired session id. Terminal for the
// request that triggered it.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %s not found", e.ID)
}

// StageError indicates an operation invoked in a stage that does not allow it
type StageError struct {
	Op    string
	Stage Stage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("operation %s not allowed in stage %s", e.Op, e.Stage)
}

// ExternalCallError indicates a timeout or malformed response from the
// Language Model Service. Recoverable: the session keeps its last-good record
// snapshot and the same transition may be retried.
type ExternalCallError struct {
	Op    string
	Cause error
}

func (e *ExternalCallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("external call %s failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("external call %s failed", e.Op)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Cause
}
