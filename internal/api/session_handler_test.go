package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/domain"
)

// MockSessionService for testing
type MockSessionService struct {
	issueFunc    func() (*domain.SessionResponse, error)
	validateFunc func(token string) (string, error)
}

func (m *MockSessionService) Issue() (*domain.SessionResponse, error) {
	if m.issueFunc != nil {
		return m.issueFunc()
	}
	return &domain.SessionResponse{
		Token:     "test-token",
		SessionID: "test-session",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (m *MockSessionService) Validate(token string) (string, error) {
	if m.validateFunc != nil {
		return m.validateFunc(token)
	}
	return "test-session", nil
}

func TestSessionHandler_CreateSession(t *testing.T) {
	handler := NewSessionHandler(&MockSessionService{}, zap.NewNop())

	req := httptest.NewRequest("POST", "/api/v1/session", nil)
	w := httptest.NewRecorder()
	handler.CreateSession(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("CreateSession() status = %d, want %d", w.Code, http.StatusOK)
	}

	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("CreateSession() invalid response data: %v", envelope)
	}
	if token, _ := data["token"].(string); token != "test-token" {
		t.Errorf("CreateSession() token = %q, want test-token", token)
	}
}

func TestSessionHandler_AuthForm(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid signin",
			body:       `{"mode":"signin","email":"user@example.com","password":"secret"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid signup",
			body:       `{"mode":"signup","email":"user@example.com","password":"secret","name":"User"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown mode",
			body:       `{"mode":"reset","email":"user@example.com","password":"secret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing email",
			body:       `{"mode":"signin","password":"secret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed email",
			body:       `{"mode":"signin","email":"not-an-email","password":"secret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       `{"mode":"signin","email":"user@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "signup without name",
			body:       `{"mode":"signup","email":"user@example.com","password":"secret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSessionHandler(&MockSessionService{}, zap.NewNop())

			req := newSessionRequest("POST", "/api/v1/auth/form", []byte(tt.body))
			w := httptest.NewRecorder()
			handler.AuthForm(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("AuthForm() status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestSessionHandler_AuthFormIssuesSession(t *testing.T) {
	issued := false
	mockService := &MockSessionService{
		issueFunc: func() (*domain.SessionResponse, error) {
			issued = true
			return &domain.SessionResponse{Token: "t", SessionID: "s", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	handler := NewSessionHandler(mockService, zap.NewNop())

	body := []byte(`{"mode":"signin","email":"user@example.com","password":"secret"}`)
	req := newSessionRequest("POST", "/api/v1/auth/form", body)
	w := httptest.NewRecorder()
	handler.AuthForm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("AuthForm() status = %d, want %d", w.Code, http.StatusOK)
	}
	if !issued {
		t.Error("AuthForm() should issue a guest session")
	}
}
