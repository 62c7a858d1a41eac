package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/service"
	"github.com/vibast-solutions/ms-go-accounts/config"
)

func newTokenService(accessTTL, refreshTTL time.Duration) *service.TokenService {
	return service.NewTokenService(&config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	svc := newTokenService(15*time.Minute, 30*24*time.Hour)

	token, err := svc.IssueAccess(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.TokenType != "" {
		t.Fatalf("access token should carry no type claim, got %q", claims.TokenType)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id parse failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestTokenService_RefreshCarriesTypeDiscriminator(t *testing.T) {
	svc := newTokenService(15*time.Minute, 30*24*time.Hour)

	token, err := svc.IssueRefresh(7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.TokenType != service.TokenTypeRefresh {
		t.Fatalf("expected refresh type, got %q", claims.TokenType)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTokenService(-time.Minute, 30*24*time.Hour)

	token, err := svc.IssueAccess(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, service.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	issuer := newTokenService(15*time.Minute, 30*24*time.Hour)
	verifier := service.NewTokenService(&config.Config{
		JWTSecret:       "different-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	})

	token, err := issuer.IssueAccess(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := newTokenService(15*time.Minute, 30*24*time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, service.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}
