package session

import "strings"

// Ledger tracks the exact text of every question surfaced to the user during
// a session. Membership is checked post-trim and case-sensitively: question
// text is authored by the model in one target language, so case folding would
// only risk collapsing unrelated questions.
type Ledger struct {
	Questions []string `json:"questions"`
}

// AlreadyAsked reports whether the question text was surfaced before
func (l *Ledger) AlreadyAsked(text string) bool {
	text = strings.TrimSpace(text)
	for _, q := range l.Questions {
		if q == text {
			return true
		}
	}
	return false
}

// Record adds a question to the ledger. Blank and repeated texts are ignored.
// Questions are recorded at surface time, not answer time, so a question that
// times out unanswered is still never re-asked.
func (l *Ledger) Record(text string) {
	text = strings.TrimSpace(text)
	if text == "" || l.AlreadyAsked(text) {
		return
	}
	l.Questions = append(l.Questions, text)
}

// Len returns the number of questions surfaced so far
func (l *Ledger) Len() int {
	return len(l.Questions)
}

// Snapshot returns a copy of the asked-question texts in surface order
func (l *Ledger) Snapshot() []string {
	return append([]string(nil), l.Questions...)
}
