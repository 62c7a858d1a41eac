package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected 15m access TTL, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 30*24*time.Hour {
		t.Fatalf("expected 30d refresh TTL, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.ResetTokenTTL != time.Hour {
		t.Fatalf("expected 1h reset TTL, got %v", cfg.ResetTokenTTL)
	}
	if cfg.PasswordMinLength != 8 {
		t.Fatalf("expected min length 8, got %d", cfg.PasswordMinLength)
	}
	if cfg.DatabaseDriver != "sqlite3" {
		t.Fatalf("expected sqlite3 driver, got %q", cfg.DatabaseDriver)
	}
	if !cfg.Features.Registration || !cfg.Features.PasswordReset || !cfg.Features.Backups {
		t.Fatalf("expected all feature flags enabled by default: %+v", cfg.Features)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
	t.Setenv("PASSWORD_MIN_LENGTH", "12")
	t.Setenv("ENABLE_USER_REGISTRATION", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("expected 5m access TTL, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7d refresh TTL, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.PasswordMinLength != 12 {
		t.Fatalf("expected min length 12, got %d", cfg.PasswordMinLength)
	}
	if cfg.Features.Registration {
		t.Fatalf("expected registration disabled")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example.com" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestValidatePassword(t *testing.T) {
	cfg := &Config{PasswordMinLength: 8}

	if err := cfg.ValidatePassword("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := cfg.ValidatePassword("longenough1"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := getEnv("TEST_STRING", "default"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := getEnv("MISSING_STRING", "default"); got != "default" {
		t.Fatalf("expected default, got %q", got)
	}

	t.Setenv("TEST_BOOL", "true")
	if got := getBoolEnv("TEST_BOOL", false); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	t.Setenv("TEST_BOOL", "invalid")
	if got := getBoolEnv("TEST_BOOL", true); got != true {
		t.Fatalf("expected default bool, got %v", got)
	}

	t.Setenv("TEST_INT", "42")
	if got := getIntEnv("TEST_INT", 5); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("TEST_INT", "invalid")
	if got := getIntEnv("TEST_INT", 5); got != 5 {
		t.Fatalf("expected default int, got %d", got)
	}
}
