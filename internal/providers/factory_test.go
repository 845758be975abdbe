package providers

import (
	"net/http"
	"testing"

	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
)

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Providers.OpenSubtitles.Enabled = true
	cfg.Providers.SubDB.Enabled = true
	cfg.Providers.Subscene.Enabled = true
	cfg.Providers.Subscene.BaseURL = "https://subscene.example"

	set, err := NewFromConfig(cfg, http.DefaultClient)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}

	expected := []models.Source{models.SourceOpenSubtitles, models.SourceSubDB, models.SourceSubscene}
	if len(set.Providers) != len(expected) {
		t.Fatalf("Expected %d providers, got %d", len(expected), len(set.Providers))
	}
	for i, p := range set.Providers {
		if p.Name() != expected[i] {
			t.Errorf("provider %d = %v, want %v", i, p.Name(), expected[i])
		}
		if _, ok := p.(*resilientProvider); !ok {
			t.Errorf("provider %d is not wrapped with resilience policies", i)
		}
	}
	// SubDB and subscene resolve their own URLs
	if len(set.Resolvers) != 2 {
		t.Errorf("Expected 2 resolvers, got %d", len(set.Resolvers))
	}
}

func TestNewFromConfig_Disabled(t *testing.T) {
	set, err := NewFromConfig(&config.Config{}, http.DefaultClient)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if len(set.Providers) != 0 || len(set.Resolvers) != 0 {
		t.Errorf("Expected nothing enabled, got %+v", set)
	}
}
