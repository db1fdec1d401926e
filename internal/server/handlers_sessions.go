package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/ingest"
	"github.com/jonathan/cv-builder/internal/render"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/types"
)

// SessionResponse is the API view of a session
type SessionResponse struct {
	ID               uuid.UUID       `json:"id"`
	Stage            session.Stage   `json:"stage"`
	Revision         int             `json:"revision"`
	QuestionsAsked   int             `json:"questions_asked"`
	QuestionCap      int             `json:"question_cap"`
	PendingQuestions []string        `json:"pending_questions,omitempty"`
	Language         string          `json:"language"`
	Record           *types.CvRecord `json:"record,omitempty"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Token            string          `json:"token,omitempty"`
}

// QuestionBatchResponse is returned by the questions endpoint
type QuestionBatchResponse struct {
	Stage          session.Stage `json:"stage"`
	Questions      []string      `json:"questions"`
	QuestionsAsked int           `json:"questions_asked"`
	QuestionCap    int           `json:"question_cap"`
}

func sessionResponse(state *session.State, token string) SessionResponse {
	return SessionResponse{
		ID:               state.ID,
		Stage:            state.Stage,
		Revision:         state.Revision,
		QuestionsAsked:   state.Ledger.Len(),
		QuestionCap:      state.QuestionCap,
		PendingQuestions: state.Pending,
		Language:         state.Language,
		Record:           state.Record,
		FailureReason:    state.FailureReason,
		CreatedAt:        state.CreatedAt,
		UpdatedAt:        state.UpdatedAt,
		Token:            token,
	}
}

// sessionID parses the session id from the request path and, when auth is
// enabled, checks that the token is scoped to that session.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}

	if s.jwtService != nil {
		authID, err := middleware.GetSessionID(r)
		if err != nil || authID != id {
			s.errorResponse(w, http.StatusForbidden, "Token not valid for this session")
			return uuid.Nil, false
		}
	}

	return id, true
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	text := ingest.PrepareDocument(req.DocumentText)
	if text == "" {
		s.errorResponse(w, http.StatusBadRequest, "Document contains no extractable text")
		return
	}

	state, err := s.machine.StartSession(r.Context(), text, req.Language, req.QuestionCap)
	if err != nil {
		// A failed extraction still persists the session in its failed stage
		// so the client can see what happened.
		if state != nil && state.Stage == session.StageFailed {
			s.jsonResponse(w, http.StatusBadGateway, sessionResponse(state, ""))
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token := ""
	if s.jwtService != nil {
		token, err = s.jwtService.GenerateToken(state.ID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to issue session token")
			return
		}
	}

	s.jsonResponse(w, http.StatusCreated, sessionResponse(state, token))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	state, err := s.machine.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionResponse(state, ""))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	if err := s.machine.Abandon(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleNextQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	state, questions, err := s.machine.NextQuestions(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if questions == nil {
		questions = []string{}
	}
	s.jsonResponse(w, http.StatusOK, QuestionBatchResponse{
		Stage:          state.Stage,
		Questions:      questions,
		QuestionsAsked: state.Ledger.Len(),
		QuestionCap:    state.QuestionCap,
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var req types.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.machine.SubmitAnswer(r.Context(), id, req.Question, req.Answer)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionResponse(state, ""))
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	state, err := s.machine.Finalize(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionResponse(state, ""))
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	state, err := s.machine.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if state.Stage != session.StageFinalized {
		s.errorResponse(w, http.StatusConflict, "Session is not finalized")
		return
	}

	templateID := r.URL.Query().Get("template")
	doc, err := s.renderer.Render(state.Record, templateID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	switch templateID {
	case render.TemplateLaTeX:
		w.Header().Set("Content-Type", "application/x-latex")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
