// Package session owns one in-progress CV assembly: the current record
// snapshot, the question ledger, and the state machine that sequences
// extraction, the question loop, and finalization.
package session

// Stage is a named step in the session state machine
type Stage string

// Session stages, in control-flow order
const (
	StageCreated        Stage = "created"
	StageExtracted      Stage = "extracted"
	StageQuestioning    Stage = "questioning"
	StageAwaitingAnswer Stage = "awaiting_answer"
	StageMerged         Stage = "merged"
	StageFinalizing     Stage = "finalizing"
	StageFinalized      Stage = "finalized"
	StageFailed         Stage = "failed"
)

// Terminal reports whether no further transitions are possible from the stage
func (s Stage) Terminal() bool {
	return s == StageFinalized || s == StageFailed
}
