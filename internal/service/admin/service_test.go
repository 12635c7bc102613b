package admin

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return New(string(hash), "unit-test-secret", ttl)
}

func TestLoginAndValidate_RoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Login("open-sesame")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Role != roleAdmin {
		t.Fatalf("role = %q, want %q", claims.Role, roleAdmin)
	}
	if claims.ID == "" {
		t.Fatalf("token must carry a unique id")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, time.Hour)

	if _, err := svc.Login("guess"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidate_RejectsForgedAndExpired(t *testing.T) {
	svc := newTestService(t, time.Hour)

	if _, err := svc.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: expected ErrInvalidToken, got %v", err)
	}

	// token signed under a different secret
	other := New(string(svc.passwordHash), "another-secret", time.Hour)
	foreign, err := other.Login("open-sesame")
	if err != nil {
		t.Fatalf("foreign login: %v", err)
	}
	if _, err := svc.Validate(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign token: expected ErrInvalidToken, got %v", err)
	}

	// token already past its expiry
	expired := newTestService(t, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.Login("open-sesame")
	if err != nil {
		t.Fatalf("stale login: %v", err)
	}
	if _, err := svc.Validate(stale); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenTTLSeconds(t *testing.T) {
	if got := newTestService(t, 90*time.Minute).TokenTTLSeconds(); got != 5400 {
		t.Fatalf("ttl = %d, want 5400", got)
	}
}
