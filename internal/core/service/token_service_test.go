package service

import (
	"errors"
	"testing"
	"time"

	"github.com/salesbridge/dashboard-api/internal/core/domain"
	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

func TestTokenService_IssueVerify_Roundtrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(ports.TokenClaims{
		UserID:   "user_1",
		Role:     domain.RoleClient,
		ClientID: "client_1",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Fatalf("unexpected user id: %q", claims.UserID)
	}
	if claims.Role != domain.RoleClient {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
	if claims.ClientID != "client_1" {
		t.Fatalf("unexpected client id: %q", claims.ClientID)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue(ports.TokenClaims{UserID: "user_1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("test-secret")
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := svc.Issue(ports.TokenClaims{UserID: "user_1", Role: domain.RoleSDR})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret")
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
