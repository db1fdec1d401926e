package llm

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/merge"
	"github.com/jonathan/cv-builder/internal/prompts"
	"github.com/jonathan/cv-builder/internal/types"
)

// Service implements the Language Model Service boundary consumed by the
// session state machine. Extraction and finalization return raw JSON text;
// the machine validates it through the record model before accepting it.
type Service struct {
	client Client
}

// NewService creates a Service over an LLM client. The client is injected
// once per process; the service holds no other state.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// ExtractRecord asks the model to extract a CvRecord-shaped JSON object from
// raw document text.
func (s *Service) ExtractRecord(ctx context.Context, documentText string) (string, error) {
	template := prompts.MustGet("cv.json", "extract-record")
	prompt := prompts.Format(template, map[string]string{
		"DocumentText": documentText,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return "", &APICallError{Message: "record extraction failed", Cause: err}
	}
	return raw, nil
}

// GenerateQuestions asks the model for up to maxCount gap-filling questions.
// The full asked list travels with the prompt so the model never repeats a
// question; the caller filters defensively on top.
func (s *Service) GenerateQuestions(ctx context.Context, rec *types.CvRecord, asked []string, language string, maxCount int) ([]string, error) {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, &ResponseError{Message: "failed to encode record", Cause: err}
	}

	template := prompts.MustGet("cv.json", "generate-questions")
	prompt := prompts.Format(template, map[string]string{
		"Record":   string(recJSON),
		"Asked":    formatAskedList(asked),
		"Language": language,
		"MaxCount": strconv.Itoa(maxCount),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, &APICallError{Message: "question generation failed", Cause: err}
	}

	return parseQuestionList(raw)
}

// ProposeUpdate derives a single path-addressed record change from a user
// answer. A proposal with an empty path means the answer carried no
// structured information; callers treat that as "no change".
func (s *Service) ProposeUpdate(ctx context.Context, rec *types.CvRecord, question, answer string) (*merge.PathUpdate, error) {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, &ResponseError{Message: "failed to encode record", Cause: err}
	}

	template := prompts.MustGet("cv.json", "propose-update")
	prompt := prompts.Format(template, map[string]string{
		"Record":   string(recJSON),
		"Question": question,
		"Answer":   answer,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, &APICallError{Message: "update proposal failed", Cause: err}
	}

	var upd merge.PathUpdate
	if err := json.Unmarshal([]byte(raw), &upd); err != nil {
		return nil, &ResponseError{Message: "failed to parse update proposal", Cause: err}
	}
	if strings.TrimSpace(upd.Path) == "" {
		return nil, nil
	}
	return &upd, nil
}

// FinalizeRecord asks the model for one whole-record rewrite with every
// string field in the target language.
func (s *Service) FinalizeRecord(ctx context.Context, rec *types.CvRecord, language string) (string, error) {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return "", &ResponseError{Message: "failed to encode record", Cause: err}
	}

	template := prompts.MustGet("cv.json", "finalize-record")
	prompt := prompts.Format(template, map[string]string{
		"Record":   string(recJSON),
		"Language": language,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, TierAdvanced)
	if err != nil {
		return "", &APICallError{Message: "record finalization failed", Cause: err}
	}
	return raw, nil
}

func formatAskedList(asked []string) string {
	if len(asked) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, q := range asked {
		sb.WriteString("- ")
		sb.WriteString(q)
		sb.WriteString("\n")
	}
	return sb.String()
}

// parseQuestionList accepts both a bare JSON array of strings and the
// {"questions": [...]} wrapper some models produce.
func parseQuestionList(raw string) ([]string, error) {
	var questions []string
	if err := json.Unmarshal([]byte(raw), &questions); err == nil {
		return questions, nil
	}

	var wrapper struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		return nil, &ResponseError{Message: "failed to parse question list", Cause: err}
	}
	return wrapper.Questions, nil
}
