package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected default port %q", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level %q", cfg.LogLevel)
	}
	if cfg.MALBaseURL != "https://api.myanimelist.net/v2" {
		t.Fatalf("unexpected default catalog url %q", cfg.MALBaseURL)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("unexpected default origins %v", cfg.AllowedOrigins)
	}
	if cfg.APIMaxInFlight != 64 {
		t.Fatalf("unexpected default in-flight cap %d", cfg.APIMaxInFlight)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("MAL_CLIENT_ID", "client-abc")
	t.Setenv("API_RATE_LIMIT_RPS", "0.5")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://alt.example.com ,")

	cfg := Load()
	if cfg.APIPort != "9999" {
		t.Fatalf("expected env port, got %q", cfg.APIPort)
	}
	if cfg.MALClientID != "client-abc" {
		t.Fatalf("expected env client id, got %q", cfg.MALClientID)
	}
	if cfg.APIRateLimitRPS != 0.5 {
		t.Fatalf("expected fractional rps, got %v", cfg.APIRateLimitRPS)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("expected trimmed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadFallsBackOnUnparseableNumbers(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("API_RATE_LIMIT_RPS", "fast")

	cfg := Load()
	if cfg.APIRateLimitBurst != 5 {
		t.Fatalf("expected fallback burst, got %d", cfg.APIRateLimitBurst)
	}
	if cfg.APIRateLimitRPS != 2 {
		t.Fatalf("expected fallback rps, got %v", cfg.APIRateLimitRPS)
	}
}
