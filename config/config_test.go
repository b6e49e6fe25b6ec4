package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("missing .env must not be fatal: %v", err)
	}
	if cfg.EnvFileLoaded {
		t.Fatal("EnvFileLoaded = true for a missing file")
	}
	if cfg.Port != "5000" {
		t.Fatalf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.JWTExpiration != 24*time.Hour {
		t.Fatalf("JWTExpiration = %v, want 24h", cfg.JWTExpiration)
	}
	if !cfg.AllowAllOrigins() {
		t.Fatal("expected wildcard CORS origins by default")
	}
	if cfg.RateLimit != DefaultRateLimitConfig {
		t.Fatalf("RateLimit = %+v, want %+v", cfg.RateLimit, DefaultRateLimitConfig)
	}
	if !strings.HasPrefix(cfg.DatabaseURL, "postgres://") {
		t.Fatalf("DatabaseURL = %q, want postgres default", cfg.DatabaseURL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://catalog.db")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://bioalgodb.org")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "sqlite://catalog.db" {
		t.Fatalf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://bioalgodb.org" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.AllowAllOrigins() {
		t.Fatal("explicit origins must not allow all")
	}
	if cfg.JWTExpiration != 90*time.Minute {
		t.Fatalf("JWTExpiration = %v", cfg.JWTExpiration)
	}
	if cfg.RateLimit.Burst != 5 {
		t.Fatalf("RateLimit.Burst = %d", cfg.RateLimit.Burst)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("BIOALGODB_TEST_UNUSED=1\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("BIOALGODB_TEST_UNUSED")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.EnvFileLoaded {
		t.Fatal("EnvFileLoaded = false after reading the file")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
