package types

import "github.com/go-playground/validator/v10"

// CreateSessionRequest starts a new assembly session from an uploaded
// document's extracted text.
type CreateSessionRequest struct {
	DocumentText string `json:"document_text" validate:"required,min=1"`
	Language     string `json:"language,omitempty"`
	QuestionCap  int    `json:"question_cap,omitempty" validate:"omitempty,min=1,max=50"`
}

// SubmitAnswerRequest carries the user's answer to a previously surfaced question.
type SubmitAnswerRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	Answer   string `json:"answer" validate:"required,min=1"`
}

// Validate validates the CreateSessionRequest using the validator.
func (r *CreateSessionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SubmitAnswerRequest using the validator.
func (r *SubmitAnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
