package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct {
	id uuid.UUID
}

func (c *stubClaims) GetSessionID() uuid.UUID { return c.id }

type stubValidator struct {
	id  uuid.UUID
	err error
}

func (v *stubValidator) ValidateToken(_ string) (SessionIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{id: v.id}, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	sessionID := uuid.New()
	var gotID uuid.UUID

	handler := AuthMiddleware(&stubValidator{id: sessionID})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := GetSessionID(r)
			require.NoError(t, err)
			gotID = id
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest("GET", "/sessions/x", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionID, gotID)
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	handler := AuthMiddleware(&stubValidator{id: uuid.New()})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	handler := AuthMiddleware(&stubValidator{id: uuid.New()})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not be reached")
		}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	handler := AuthMiddleware(&stubValidator{id: uuid.New()})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not be reached")
		}))

	for _, value := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", value)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header: %q", value)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler := AuthMiddleware(&stubValidator{err: errors.New("expired")})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not be reached")
		}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSessionID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, err := GetSessionID(req)
	assert.Error(t, err)
}
