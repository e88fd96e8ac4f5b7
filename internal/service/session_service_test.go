package service

import (
	"testing"
	"time"

	"github.com/MorseWayne/lens_store/internal/config"
)

func sessionTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "lens-store"
	cfg.Session.Secret = "test-secret"
	cfg.Session.TTL = time.Hour
	return cfg
}

func TestSessionService_IssueAndValidate(t *testing.T) {
	svc := NewSessionService(sessionTestConfig(), nil)

	session, err := svc.Issue()
	if err != nil {
		t.Fatalf("Issue() unexpected error = %v", err)
	}
	if session.Token == "" || session.SessionID == "" {
		t.Fatalf("Issue() returned empty token or session id: %+v", session)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Errorf("Issue() expiry should be in the future, got %v", session.ExpiresAt)
	}

	sessionID, err := svc.Validate(session.Token)
	if err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if sessionID != session.SessionID {
		t.Errorf("Validate() session id = %q, want %q", sessionID, session.SessionID)
	}
}

func TestSessionService_IssueUniqueSessions(t *testing.T) {
	svc := NewSessionService(sessionTestConfig(), nil)

	first, err := svc.Issue()
	if err != nil {
		t.Fatalf("Issue() unexpected error = %v", err)
	}
	second, err := svc.Issue()
	if err != nil {
		t.Fatalf("Issue() unexpected error = %v", err)
	}
	if first.SessionID == second.SessionID {
		t.Error("Issue() should generate unique session ids")
	}
}

func TestSessionService_ValidateRejectsGarbage(t *testing.T) {
	svc := NewSessionService(sessionTestConfig(), nil)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"not a jwt", "garbage"},
		{"truncated jwt", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Validate(tt.token); err != ErrInvalidToken {
				t.Errorf("Validate(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestSessionService_ValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewSessionService(sessionTestConfig(), nil)

	otherCfg := sessionTestConfig()
	otherCfg.Session.Secret = "different-secret"
	verifier := NewSessionService(otherCfg, nil)

	session, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue() unexpected error = %v", err)
	}

	if _, err := verifier.Validate(session.Token); err != ErrInvalidToken {
		t.Errorf("Validate() with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestSessionService_ValidateRejectsWrongIssuer(t *testing.T) {
	issuerCfg := sessionTestConfig()
	issuerCfg.App.Name = "other-app"
	issuer := NewSessionService(issuerCfg, nil)

	verifier := NewSessionService(sessionTestConfig(), nil)

	session, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue() unexpected error = %v", err)
	}

	if _, err := verifier.Validate(session.Token); err != ErrInvalidToken {
		t.Errorf("Validate() with wrong issuer error = %v, want ErrInvalidToken", err)
	}
}
