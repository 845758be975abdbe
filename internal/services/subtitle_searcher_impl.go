package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/cache"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/metrics"
	"github.com/moviereview/subtitles/internal/models"
	"github.com/moviereview/subtitles/internal/providers"
)

const (
	defaultFreshness = time.Hour
	defaultLanguage  = "en"
)

// cacheEnvelope is the value stored per search key
type cacheEnvelope struct {
	StoredAt time.Time       `json:"storedAt"`
	Results  json.RawMessage `json:"results"`
}

// SearcherOptions configures DefaultSubtitleSearcher.
type SearcherOptions struct {
	Freshness       time.Duration    // how long a stored search is served, 1h when zero
	DefaultLanguage string           // "en" when empty
	Now             func() time.Time // time.Now when nil
}

// DefaultSubtitleSearcher fans a search out to every provider, merges,
// deduplicates and scores the results and caches them per request.
type DefaultSubtitleSearcher struct {
	providers []providers.Provider
	cache     cache.Cache
	freshness time.Duration
	language  string
	now       func() time.Time
	group     singleflight.Group
}

// NewSubtitleSearcher creates a searcher. Provider order is the merge and
// deduplication priority.
func NewSubtitleSearcher(providerList []providers.Provider, c cache.Cache, opts SearcherOptions) *DefaultSubtitleSearcher {
	s := &DefaultSubtitleSearcher{
		providers: providerList,
		cache:     c,
		freshness: opts.Freshness,
		language:  opts.DefaultLanguage,
		now:       opts.Now,
	}
	if s.freshness <= 0 {
		s.freshness = defaultFreshness
	}
	if s.language == "" {
		s.language = defaultLanguage
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Search implements SubtitleSearcher.
func (s *DefaultSubtitleSearcher) Search(ctx context.Context, req models.SearchRequest) (*SearchResult, error) {
	logger := config.GetLogger()

	req = s.normalize(req)
	if !req.HasIdentifier() {
		metrics.SubtitleSearchesTotal.WithLabelValues("bad_request").Inc()
		return nil, apperrors.NewMissingSearchParameterError()
	}

	key := req.CacheKey()
	if result, ok := s.lookup(key); ok {
		logger.Debug().Str("key", key).Int("results", len(result.Subtitles)).Msg("Serving subtitle search from cache")
		metrics.SubtitleSearchesTotal.WithLabelValues("hit").Inc()
		return result, nil
	}

	// Identical concurrent misses share one provider fan-out. The shared work
	// must not die with the first caller's context.
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.searchProviders(context.WithoutCancel(ctx), req, key)
	})
	if err != nil {
		metrics.SubtitleSearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.SubtitleSearchesTotal.WithLabelValues("miss").Inc()

	result := v.(*SearchResult)
	logger.Info().
		Str("query", req.Query).
		Str("imdb_id", req.IMDBID).
		Str("language", req.Language).
		Int("results", len(result.Subtitles)).
		Bool("shared", shared).
		Msg("Subtitle search completed")
	return result, nil
}

func (s *DefaultSubtitleSearcher) normalize(req models.SearchRequest) models.SearchRequest {
	req.Query = strings.TrimSpace(req.Query)
	req.IMDBID = strings.TrimSpace(req.IMDBID)
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	req.MovieHash = strings.ToLower(strings.TrimSpace(req.MovieHash))
	if req.Language == "" {
		req.Language = s.language
	}
	return req
}

// lookup returns a fresh cached result. Stale and corrupt entries are misses;
// corrupt ones are dropped so the next store starts clean.
func (s *DefaultSubtitleSearcher) lookup(key string) (*SearchResult, bool) {
	raw, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}

	var env cacheEnvelope
	var subtitles []models.Subtitle
	if err := json.Unmarshal(raw, &env); err != nil || env.Results == nil {
		s.dropCorrupt(key, err)
		return nil, false
	}
	if err := json.Unmarshal(env.Results, &subtitles); err != nil {
		s.dropCorrupt(key, err)
		return nil, false
	}

	if s.now().Sub(env.StoredAt) >= s.freshness {
		return nil, false
	}
	return &SearchResult{Subtitles: subtitles, Body: env.Results, FromCache: true}, true
}

func (s *DefaultSubtitleSearcher) dropCorrupt(key string, err error) {
	logger := config.GetLogger()
	logger.Warn().Err(err).Str("key", key).Msg("Discarding corrupt subtitle search cache entry")
	s.cache.Delete(key)
}

func (s *DefaultSubtitleSearcher) searchProviders(ctx context.Context, req models.SearchRequest, key string) (*SearchResult, error) {
	perProvider := make([][]models.Subtitle, len(s.providers))

	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			perProvider[i] = s.searchProvider(ctx, p, req)
		}()
	}
	wg.Wait()

	merged := mergeResults(perProvider)
	now := s.now()
	for i := range merged {
		merged[i].Score = ScoreSubtitle(merged[i], now)
	}

	body, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subtitle results: %w", err)
	}
	envelope, err := json.Marshal(cacheEnvelope{StoredAt: now, Results: body})
	if err != nil {
		return nil, fmt.Errorf("failed to encode subtitle cache entry: %w", err)
	}
	s.cache.Set(key, envelope)

	return &SearchResult{Subtitles: merged, Body: body}, nil
}

// searchProvider runs one provider. Its failures are logged and absorbed so
// they never affect the other providers or the overall search.
func (s *DefaultSubtitleSearcher) searchProvider(ctx context.Context, p providers.Provider, req models.SearchRequest) (subs []models.Subtitle) {
	logger := config.GetLogger()
	name := p.Name().String()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("provider", name).Interface("panic", r).Msg("Subtitle provider panicked")
			metrics.ProviderRequestsTotal.WithLabelValues(name, "error").Inc()
			subs = nil
		}
	}()

	subs, err := p.Search(ctx, req)
	metrics.ProviderRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.ProviderRequestsTotal.WithLabelValues(name, "success").Inc()
		metrics.ProviderResults.WithLabelValues(name).Add(float64(len(subs)))
		logger.Debug().Str("provider", name).Int("results", len(subs)).Msg("Subtitle provider search succeeded")
		return subs
	case errors.Is(err, &apperrors.ErrProviderNotConfigured{}):
		metrics.ProviderRequestsTotal.WithLabelValues(name, "skipped").Inc()
		logger.Warn().Err(err).Str("provider", name).Msg("Subtitle provider not configured")
	default:
		metrics.ProviderRequestsTotal.WithLabelValues(name, "error").Inc()
		logger.Warn().Err(err).Str("provider", name).Msg("Subtitle provider search failed")
	}
	return nil
}

// mergeResults concatenates provider results in provider order and keeps the
// first result per content hash. Results without a hash are never collapsed.
func mergeResults(perProvider [][]models.Subtitle) []models.Subtitle {
	seen := make(map[string]struct{})
	return lo.Filter(lo.Flatten(perProvider), func(sub models.Subtitle, _ int) bool {
		if sub.Hash == "" {
			return true
		}
		if _, dup := seen[sub.Hash]; dup {
			return false
		}
		seen[sub.Hash] = struct{}{}
		return true
	})
}
