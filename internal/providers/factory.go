package providers

import (
	"net/http"
	"time"

	"github.com/moviereview/subtitles/internal/config"
)

// Set is the configured provider line up. Providers keeps the search order,
// which is also the deduplication priority.
type Set struct {
	Providers []Provider
	Resolvers []Resolver
}

// NewFromConfig builds every enabled provider, wrapped with the resilience
// policies from the search settings.
func NewFromConfig(cfg *config.Config, httpClient *http.Client) (*Set, error) {
	logger := config.GetLogger()
	opts := ResilienceOptions{
		Timeout:    config.ParseDuration("search.provider_timeout", cfg.Search.ProviderTimeout, 15*time.Second),
		MaxRetries: cfg.Search.ProviderRetries,
		RetryDelay: 250 * time.Millisecond,
	}

	set := &Set{}
	add := func(p Provider) {
		set.Providers = append(set.Providers, WithResilience(p, opts))
		if r, ok := p.(Resolver); ok {
			set.Resolvers = append(set.Resolvers, r)
		}
		logger.Info().Str("provider", p.Name().String()).Msg("Subtitle provider enabled")
	}

	if cfg.Providers.OpenSubtitles.Enabled {
		p, err := NewOpenSubtitles(OpenSubtitlesConfig{
			APIKey:     cfg.Providers.OpenSubtitles.APIKey,
			UserAgent:  cfg.UserAgent,
			BaseURL:    cfg.Providers.OpenSubtitles.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Providers.OpenSubtitles.APIKey == "" {
			logger.Warn().Msg("OpenSubtitles API key not configured, provider will return no results")
		}
		add(p)
	}
	if cfg.Providers.SubDB.Enabled {
		p, err := NewSubDB(SubDBConfig{BaseURL: cfg.Providers.SubDB.BaseURL, UserAgent: cfg.UserAgent, HTTPClient: httpClient})
		if err != nil {
			return nil, err
		}
		add(p)
	}
	if cfg.Providers.Subscene.Enabled {
		p, err := NewSubscene(SubsceneConfig{BaseURL: cfg.Providers.Subscene.BaseURL, HTTPClient: httpClient})
		if err != nil {
			return nil, err
		}
		add(p)
	}

	return set, nil
}
