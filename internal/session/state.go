package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/record"
	"github.com/jonathan/cv-builder/internal/types"
)

// State is one in-progress assembly. It is mutated only through Machine
// transition functions; the record inside it is replaced, never edited in
// place, so earlier snapshots stay valid for diffing and audit.
type State struct {
	ID       uuid.UUID       `json:"id"`
	Stage    Stage           `json:"stage"`
	Record   *types.CvRecord `json:"record,omitempty"`
	Ledger   Ledger          `json:"ledger"`
	Pending  []string        `json:"pending_questions,omitempty"`
	Revision int             `json:"revision"`

	QuestionCap int    `json:"question_cap"`
	Language    string `json:"language"`

	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	FailureReason string    `json:"failure_reason,omitempty"`
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	out := *s
	out.Record = record.Clone(s.Record)
	out.Ledger = Ledger{Questions: s.Ledger.Snapshot()}
	out.Pending = append([]string(nil), s.Pending...)
	return &out
}

// QuestionsRemaining returns how many more questions the session may surface
func (s *State) QuestionsRemaining() int {
	remaining := s.QuestionCap - s.Ledger.Len()
	if remaining < 0 {
		return 0
	}
	return remaining
}
