package infra

import (
	"errors"
	"testing"
	"time"

	"photosuite/internal/domain"
)

func clearGeminiEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TIMEOUT_SECONDS",
		"PORT", "RATE_LIMIT_PER_MINUTE", "MAX_UPLOAD_MB", "DEFAULT_LOCALE", "CORS_ALLOWED_ORIGINS",
		"SESSION_IDLE_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	clearGeminiEnv(t)

	_, err := LoadConfig()
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Fatalf("LoadConfig error = %v, want ErrMissingAPIKey", err)
	}
}

func TestLoadConfigFallsBackToAPIKey(t *testing.T) {
	clearGeminiEnv(t)
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GeminiAPIKey != "legacy-key" {
		t.Fatalf("GeminiAPIKey = %q, want %q", cfg.GeminiAPIKey, "legacy-key")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearGeminiEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("API_KEY", "ignored")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GeminiAPIKey != "key" {
		t.Fatalf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash-image" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.GeminiTimeout != 120*time.Second {
		t.Fatalf("GeminiTimeout = %s", cfg.GeminiTimeout)
	}
	if cfg.RateLimitPerMin != 10 {
		t.Fatalf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
	if cfg.MaxUploadBytes != 20<<20 {
		t.Fatalf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.DefaultLocale != "es" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("CORSAllowedOrigins = %#v", cfg.CORSAllowedOrigins)
	}
	if cfg.SessionIdleTimeout != time.Hour {
		t.Fatalf("SessionIdleTimeout = %s", cfg.SessionIdleTimeout)
	}
}

func TestLoadConfigRejectsNonPositiveSessionIdle(t *testing.T) {
	clearGeminiEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SESSION_IDLE_MINUTES", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for SESSION_IDLE_MINUTES=0")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearGeminiEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "gemini-custom")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("DEFAULT_LOCALE", "EN")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GeminiModel != "gemini-custom" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.MaxUploadBytes != 5<<20 {
		t.Fatalf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}
	if cfg.RateLimitPerMin != 10 {
		t.Fatalf("RateLimitPerMin = %d, want default for invalid input", cfg.RateLimitPerMin)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORSAllowedOrigins = %#v", cfg.CORSAllowedOrigins)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Fatalf("CORSAllowedOrigins[%d] = %q", i, cfg.CORSAllowedOrigins[i])
		}
	}
}

func TestLoadConfigRejectsNonPositiveRateLimit(t *testing.T) {
	clearGeminiEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for zero rate limit")
	}
}
