package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Expected server port 5000, got %d", cfg.Server.Port)
	}
	if cfg.GRPC.Port != 5001 {
		t.Errorf("Expected gRPC port 5001, got %d", cfg.GRPC.Port)
	}
	if cfg.Cache.Provider != "memory" {
		t.Errorf("Expected memory cache, got %q", cfg.Cache.Provider)
	}
	if cfg.Search.DefaultLanguage != "en" {
		t.Errorf("Expected default language en, got %q", cfg.Search.DefaultLanguage)
	}
	if cfg.Search.Freshness != "1h" {
		t.Errorf("Expected freshness 1h, got %q", cfg.Search.Freshness)
	}
	if cfg.Download.MaxBytes != 10<<20 {
		t.Errorf("Expected max bytes %d, got %d", 10<<20, cfg.Download.MaxBytes)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("Expected user agent %q, got %q", DefaultUserAgent, cfg.UserAgent)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "8080")
	t.Setenv("APP_CACHE_PROVIDER", "redis")
	t.Setenv("OPENSUBTITLES_API_KEY", "secret")
	t.Setenv("APP_SEARCH_FRESHNESS", "30m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected server port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Cache.Provider != "redis" {
		t.Errorf("Expected redis cache, got %q", cfg.Cache.Provider)
	}
	if cfg.Providers.OpenSubtitles.APIKey != "secret" {
		t.Errorf("Expected API key from OPENSUBTITLES_API_KEY, got %q", cfg.Providers.OpenSubtitles.APIKey)
	}
	if cfg.Search.Freshness != "30m" {
		t.Errorf("Expected freshness 30m, got %q", cfg.Search.Freshness)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "empty", value: "", want: time.Minute},
		{name: "valid", value: "15s", want: 15 * time.Second},
		{name: "malformed", value: "soon", want: time.Minute},
		{name: "negative", value: "-5s", want: time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDuration("test", tt.value, time.Minute); got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetUserAgent(t *testing.T) {
	if got := GetUserAgent(); got == "" {
		t.Error("Expected a non-empty user agent")
	}
}
