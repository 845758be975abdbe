package main

import (
	"fmt"
	"time"

	"github.com/moviereview/subtitles/internal/cache"
	"github.com/moviereview/subtitles/internal/client"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/providers"
	"github.com/moviereview/subtitles/internal/services"
)

// app holds the services shared by every command.
type app struct {
	searcher   services.SubtitleSearcher
	downloader services.SubtitleDownloader
	cache      cache.Cache
}

func newApp(cfg *config.Config) (*app, error) {
	logger := config.GetLogger()
	httpClient := client.NewHTTPClient(cfg)

	set, err := providers.NewFromConfig(cfg, httpClient)
	if err != nil {
		return nil, fmt.Errorf("configure providers: %w", err)
	}

	freshness := config.ParseDuration("search.freshness", cfg.Search.Freshness, time.Hour)
	// Entries must outlive the freshness window or fresh hits get evicted early
	ttl := max(config.ParseDuration("cache.ttl", cfg.Cache.TTL, time.Hour), freshness)

	searchCache, err := cache.New(cfg.Cache.Provider, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		Logger:        cache.NewZerologLogger(logger),
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         "search",
	})
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}

	logger.Info().
		Str("cache", cfg.Cache.Provider).
		Int("providers", len(set.Providers)).
		Dur("freshness", freshness).
		Msg("Subtitle services configured")

	return &app{
		searcher: services.NewSubtitleSearcher(set.Providers, searchCache, services.SearcherOptions{
			Freshness:       freshness,
			DefaultLanguage: cfg.Search.DefaultLanguage,
		}),
		downloader: services.NewSubtitleDownloader(httpClient, set.Resolvers, cfg.Download.MaxBytes),
		cache:      searchCache,
	}, nil
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		config.GetLogger().Error().Err(err).Msg("Failed to close cache")
	}
}
