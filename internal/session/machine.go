package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/merge"
	"github.com/jonathan/cv-builder/internal/record"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// LanguageService is the boundary to the external natural-language
// capability. ExtractRecord and FinalizeRecord return raw JSON text: the
// machine is the single validation choke point and accepts nothing that does
// not pass the record model.
type LanguageService interface {
	// ExtractRecord turns raw document text into CvRecord-shaped JSON
	ExtractRecord(ctx context.Context, documentText string) (string, error)
	// GenerateQuestions returns up to maxCount questions about missing or weak
	// sections, never repeating an entry of asked
	GenerateQuestions(ctx context.Context, rec *types.CvRecord, asked []string, language string, maxCount int) ([]string, error)
	// ProposeUpdate derives a single targeted record change from an answer
	ProposeUpdate(ctx context.Context, rec *types.CvRecord, question, answer string) (*merge.PathUpdate, error)
	// FinalizeRecord rewrites every string field in the target language and
	// returns CvRecord-shaped JSON
	FinalizeRecord(ctx context.Context, rec *types.CvRecord, language string) (string, error)
}

// Defaults applied by NewMachine when the config leaves them zero
const (
	DefaultQuestionCap = 10
	DefaultBatchSize   = 3
	DefaultCallTimeout = 90 * time.Second
	defaultLanguage    = "en"
)

// MachineConfig holds tunables for the session state machine
type MachineConfig struct {
	QuestionCap int           // default per-session cap on surfaced questions
	BatchSize   int           // questions requested per round
	CallTimeout time.Duration // timeout applied to each external call
}

// Machine drives session transitions. It holds no per-session state itself;
// everything lives in the Store, and callers must serialize requests per
// session id.
type Machine struct {
	svc         LanguageService
	store       Store
	questionCap int
	batchSize   int
	callTimeout time.Duration
}

// NewMachine creates a session state machine over the given language service
// and store.
func NewMachine(svc LanguageService, store Store, cfg MachineConfig) *Machine {
	m := &Machine{
		svc:         svc,
		store:       store,
		questionCap: cfg.QuestionCap,
		batchSize:   cfg.BatchSize,
		callTimeout: cfg.CallTimeout,
	}
	if m.questionCap <= 0 {
		m.questionCap = DefaultQuestionCap
	}
	if m.batchSize <= 0 {
		m.batchSize = DefaultBatchSize
	}
	if m.callTimeout <= 0 {
		m.callTimeout = DefaultCallTimeout
	}
	return m
}

// StartSession creates a session and runs the extraction transition
// (CREATED -> EXTRACTED). If extraction fails or its output does not validate,
// the session is persisted in FAILED: with no last-good record to fall back
// to, the caller starts over with a fresh upload.
func (m *Machine) StartSession(ctx context.Context, documentText, language string, questionCap int) (*State, error) {
	if questionCap <= 0 {
		questionCap = m.questionCap
	}
	if strings.TrimSpace(language) == "" {
		language = defaultLanguage
	}

	now := time.Now().UTC()
	state := &State{
		ID:          uuid.New(),
		Stage:       StageCreated,
		Ledger:      Ledger{Questions: []string{}},
		QuestionCap: questionCap,
		Language:    language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	callCtx, cancel := m.callContext(ctx)
	raw, err := m.svc.ExtractRecord(callCtx, documentText)
	cancel()
	if err != nil {
		return m.fail(ctx, state, "extraction call failed", err)
	}

	rec, err := m.acceptRecord(raw)
	if err != nil {
		return m.fail(ctx, state, "extraction output rejected by record model", err)
	}

	state.Record = rec
	state.Stage = StageExtracted
	state.Revision = 1
	state.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Get returns the current state snapshot for a session
func (m *Machine) Get(ctx context.Context, id uuid.UUID) (*State, error) {
	return m.store.Load(ctx, id)
}

// Abandon discards a session. No side effects exist beyond the session's own
// storage, so this is safe in any stage.
func (m *Machine) Abandon(ctx context.Context, id uuid.UUID) error {
	return m.store.Delete(ctx, id)
}

// NextQuestions requests the next question batch
// (EXTRACTED/MERGED -> QUESTIONING -> AWAITING_ANSWER). When the capability
// has nothing left to ask, or the question cap is reached, the session moves
// to FINALIZING instead and no questions are returned. Every surfaced
// question is recorded in the ledger immediately, before any answer arrives.
func (m *Machine) NextQuestions(ctx context.Context, id uuid.UUID) (*State, []string, error) {
	state, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	switch state.Stage {
	case StageExtracted, StageMerged:
		// proceed
	case StageAwaitingAnswer:
		// Unanswered questions are already on the ledger; re-surface them
		// rather than burning cap on a fresh call.
		return state, append([]string(nil), state.Pending...), nil
	case StageFinalizing:
		return state, nil, nil
	default:
		return nil, nil, &StageError{Op: "next_questions", Stage: state.Stage}
	}

	remaining := state.QuestionsRemaining()
	if remaining == 0 {
		return m.toFinalizing(ctx, state)
	}
	batch := min(m.batchSize, remaining)

	state.Stage = StageQuestioning
	callCtx, cancel := m.callContext(ctx)
	proposed, err := m.svc.GenerateQuestions(callCtx, state.Record, state.Ledger.Snapshot(), state.Language, batch)
	cancel()
	if err != nil {
		// Stage change was never persisted; the session remains retryable in
		// its prior stage.
		return nil, nil, &ExternalCallError{Op: "generate_questions", Cause: err}
	}

	questions := make([]string, 0, len(proposed))
	for _, q := range proposed {
		q = strings.TrimSpace(q)
		if q == "" || state.Ledger.AlreadyAsked(q) {
			continue
		}
		if len(questions) == batch {
			break
		}
		state.Ledger.Record(q)
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return m.toFinalizing(ctx, state)
	}

	state.Stage = StageAwaitingAnswer
	state.Pending = questions
	state.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, state); err != nil {
		return nil, nil, err
	}
	return state, append([]string(nil), questions...), nil
}

// SubmitAnswer applies a user answer (AWAITING_ANSWER -> MERGED). The raw
// question/answer pair is appended to user_additions unconditionally; the
// structured change proposed by the capability is merged on top when it can
// be normalized, and silently skipped when it cannot — user input is never
// lost either way.
func (m *Machine) SubmitAnswer(ctx context.Context, id uuid.UUID, question, answer string) (*State, error) {
	state, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Stage != StageAwaitingAnswer && state.Stage != StageMerged {
		return nil, &StageError{Op: "submit_answer", Stage: state.Stage}
	}

	callCtx, cancel := m.callContext(ctx)
	upd, err := m.svc.ProposeUpdate(callCtx, state.Record, question, answer)
	cancel()
	if err != nil {
		return nil, &ExternalCallError{Op: "propose_update", Cause: err}
	}

	patch := &types.Patch{}
	if upd != nil {
		if p, perr := upd.ToPatch(); perr == nil {
			patch = p
		}
	}
	patch.UserAdditions = append(patch.UserAdditions, types.UserAddition{
		Question: question,
		Answer:   answer,
	})

	state.Record = merge.Merge(state.Record, patch)
	state.Revision++
	state.Pending = removeQuestion(state.Pending, question)
	if len(state.Pending) == 0 {
		state.Stage = StageMerged
	}
	state.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Finalize runs the terminal transform (-> FINALIZING -> FINALIZED): one
// whole-record rewrite in the target language, validated through the record
// model before acceptance. user_additions are scratch state and are cleared
// only after the response validates. Failures leave the session retryable
// with its last-good record intact.
func (m *Machine) Finalize(ctx context.Context, id uuid.UUID) (*State, error) {
	state, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch state.Stage {
	case StageExtracted, StageMerged, StageAwaitingAnswer, StageFinalizing:
		// proceed; answering every open question is not required to finalize
	default:
		return nil, &StageError{Op: "finalize", Stage: state.Stage}
	}

	callCtx, cancel := m.callContext(ctx)
	raw, err := m.svc.FinalizeRecord(callCtx, state.Record, state.Language)
	cancel()
	if err != nil {
		return nil, &ExternalCallError{Op: "finalize", Cause: err}
	}

	finalized, err := m.acceptRecord(raw)
	if err != nil {
		return nil, &ExternalCallError{Op: "finalize", Cause: err}
	}

	// The rewrite must never lose the two protected fields.
	if finalized.Personal.Name == "" {
		finalized.Personal.Name = state.Record.Personal.Name
	}
	if finalized.Summary == "" {
		finalized.Summary = state.Record.Summary
	}
	finalized.UserAdditions = []types.UserAddition{}

	state.Record = finalized
	state.Revision++
	state.Stage = StageFinalized
	state.Pending = nil
	state.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// acceptRecord is the validation choke point for raw model output: a JSON
// Schema shape check first, then the record model's normalizing constructor.
func (m *Machine) acceptRecord(raw string) (*types.CvRecord, error) {
	if err := schemas.ValidateRecordJSON(raw); err != nil {
		return nil, err
	}
	return record.Parse(raw)
}

func (m *Machine) toFinalizing(ctx context.Context, state *State) (*State, []string, error) {
	state.Stage = StageFinalizing
	state.Pending = nil
	state.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, state); err != nil {
		return nil, nil, err
	}
	return state, nil, nil
}

func (m *Machine) fail(ctx context.Context, state *State, reason string, cause error) (*State, error) {
	state.Stage = StageFailed
	state.FailureReason = reason
	state.UpdatedAt = time.Now().UTC()
	_ = m.store.Save(ctx, state)
	return state, &ExternalCallError{Op: "extract", Cause: cause}
}

func (m *Machine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.callTimeout)
}

func removeQuestion(pending []string, question string) []string {
	question = strings.TrimSpace(question)
	out := pending[:0]
	for _, q := range pending {
		if q != question {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
