package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost string
	HTTPPort string
	LogLevel string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	PasswordMinLength int

	CORSOrigins []string
	FrontendURL string

	Features Features
	Backup   BackupConfig
}

type Features struct {
	Registration  bool
	PasswordReset bool
	Backups       bool
}

type BackupConfig struct {
	Dir               string
	R2Enabled         bool
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
}

func (c *Config) ValidatePassword(password string) error {
	if len(password) < c.PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", c.PasswordMinLength)
	}
	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	return &Config{
		HTTPHost: getEnv("HTTP_HOST", ""),
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite3"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "./data/service.db"),

		JWTSecret:       jwtSecret,
		AccessTokenTTL:  time.Duration(getIntEnv("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL: time.Duration(getIntEnv("REFRESH_TOKEN_TTL_DAYS", 30)) * 24 * time.Hour,
		ResetTokenTTL:   time.Duration(getIntEnv("RESET_TOKEN_TTL_MINUTES", 60)) * time.Minute,

		PasswordMinLength: getIntEnv("PASSWORD_MIN_LENGTH", 8),

		CORSOrigins: getListEnv("CORS_ORIGINS", []string{"*"}),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:8080"),

		Features: Features{
			Registration:  getBoolEnv("ENABLE_USER_REGISTRATION", true),
			PasswordReset: getBoolEnv("ENABLE_PASSWORD_RESET", true),
			Backups:       getBoolEnv("ENABLE_BACKUPS", true),
		},
		Backup: BackupConfig{
			Dir:               getEnv("BACKUP_DIR", "./data/backups"),
			R2Enabled:         getBoolEnv("ENABLE_R2_BACKUP", false),
			R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			R2Bucket:          getEnv("R2_BUCKET", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
