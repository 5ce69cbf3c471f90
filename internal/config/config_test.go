package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "LOG_LEVEL", "API_BASE_URL", "API_RATE_LIMIT_RPS", "SESSION_STORE", "SESSION_TTL", "MOCK_PORT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("expected default base url, got %s", cfg.APIBaseURL)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.APIRateLimitRPS != 0 {
		t.Fatalf("expected rate limit disabled by default, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.SessionStore != "file" {
		t.Fatalf("expected file session store, got %s", cfg.SessionStore)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("expected default session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.MockPort != "5000" {
		t.Fatalf("expected default mock port, got %s", cfg.MockPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.clinic.example/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_RATE_BURST", "4")
	t.Setenv("SESSION_STORE", " Redis ")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_TLS", "true")
	cfg := Load()
	if cfg.APIBaseURL != "https://api.clinic.example" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level override, got %s", cfg.LogLevel)
	}
	if cfg.APIRateLimitRPS != 2.5 || cfg.APIRateBurst != 4 {
		t.Fatalf("expected rate overrides, got %v/%d", cfg.APIRateLimitRPS, cfg.APIRateBurst)
	}
	if cfg.SessionStore != "redis" {
		t.Fatalf("expected normalized session store, got %q", cfg.SessionStore)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected ttl override, got %s", cfg.SessionTTL)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis tls enabled")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("API_RATE_BURST", "many")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("MOCK_SEED", "maybe")
	cfg := Load()
	if cfg.APIRateBurst != 1 {
		t.Fatalf("expected burst fallback, got %d", cfg.APIRateBurst)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("expected ttl fallback, got %s", cfg.SessionTTL)
	}
	if !cfg.MockSeed {
		t.Fatalf("expected seed default true")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("API_BASE_URL=http://from-dotenv:9000\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("API_BASE_URL", "")
	os.Unsetenv("API_BASE_URL")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := Load().APIBaseURL; got != "http://from-dotenv:9000" {
		t.Fatalf("expected dotenv value, got %s", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
}

func TestCORSAllowedOriginsList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	cfg := Load()
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "http://a.test" || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	if got := Load().CORSAllowedOrigins; len(got) != 1 || got[0] != "http://localhost:3000" {
		t.Fatalf("expected default origin, got %v", got)
	}
}
