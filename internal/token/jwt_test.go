package token

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/httperr"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	id := uuid.New()
	now := time.Now()

	raw, expires, err := issuer.Issue(id, UserProvider, "doc@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expires.After(now) {
		t.Fatal("expiry not in the future")
	}

	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != id || claims.UserType != UserProvider || claims.Email != "doc@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseWrongSecret(t *testing.T) {
	raw, _, err := NewIssuer("secret-a", time.Hour).Issue(uuid.New(), UserPatient, "", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Parse(raw); !httperr.IsBusiness(err, httperr.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestParseExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	raw, _, err := issuer.Issue(uuid.New(), UserProvider, "", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Parse(raw); !httperr.IsBusiness(err, httperr.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED for expired token, got %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	if _, err := issuer.Parse("not.a.token"); !httperr.IsBusiness(err, httperr.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}
