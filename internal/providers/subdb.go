package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
)

const (
	defaultSubDBBaseURL = "http://api.thesubdb.com"
	subDBProtocol       = "SubDB/1.0"
	subDBProjectURL     = "https://github.com/moviereview/subtitles"
)

// SubDBConfig describes the SubDB client configuration.
type SubDBConfig struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// SubDB looks subtitles up by media file hash. Requests without a movie hash
// contribute nothing since the API has no text search.
type SubDB struct {
	baseURL   *url.URL
	userAgent string
	http      *http.Client
}

// NewSubDB creates the provider
func NewSubDB(cfg SubDBConfig) (*SubDB, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultSubDBBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("subdb: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	// The API rejects clients that do not identify with its protocol tag
	app := strings.TrimSpace(cfg.UserAgent)
	if app == "" {
		app = config.DefaultUserAgent
	}
	return &SubDB{
		baseURL:   baseURL,
		userAgent: fmt.Sprintf("%s (%s; %s)", subDBProtocol, app, subDBProjectURL),
		http:      client,
	}, nil
}

func (s *SubDB) Name() models.Source {
	return models.SourceSubDB
}

// Search asks which languages exist for the hash and emits one result per
// requested language.
func (s *SubDB) Search(ctx context.Context, req models.SearchRequest) ([]models.Subtitle, error) {
	hash := strings.ToLower(strings.TrimSpace(req.MovieHash))
	if hash == "" {
		return nil, nil
	}

	endpoint := s.endpoint(url.Values{"action": {"search"}, "hash": {hash}})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("subdb: build search request: %w", err)
	}
	httpReq.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("subdb: search request failed: %w", err)
	}
	defer resp.Body.Close()

	// 404 means no subtitle exists for the hash
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return nil, fmt.Errorf("subdb: read search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.ErrProviderStatus{Provider: s.Name().String(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	want := strings.ToLower(strings.TrimSpace(req.Language))
	var subtitles []models.Subtitle
	for _, lang := range strings.Split(strings.TrimSpace(string(body)), ",") {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" || (want != "" && lang != want) {
			continue
		}
		name := strings.TrimSpace(req.Query)
		if name == "" {
			name = hash
		}
		subtitles = append(subtitles, models.Subtitle{
			ID:             hash + "-" + lang,
			Name:           name,
			Language:       lang,
			Source:         models.SourceSubDB,
			DownloadURL:    s.endpoint(url.Values{"action": {"download"}, "hash": {hash}, "language": {lang}}),
			Format:         "srt",
			MovieHashMatch: true,
		})
	}

	return subtitles, nil
}

// CanResolve reports whether the URL points at the SubDB API.
func (s *SubDB) CanResolve(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && strings.EqualFold(u.Host, s.baseURL.Host)
}

// Resolve keeps the URL and adds the protocol User-Agent the API requires.
func (s *SubDB) Resolve(_ context.Context, rawURL string) (*Download, error) {
	header := http.Header{}
	header.Set("User-Agent", s.userAgent)
	return &Download{URL: rawURL, Format: "srt", Header: header}, nil
}

func (s *SubDB) endpoint(params url.Values) string {
	u := *s.baseURL
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = params.Encode()
	return u.String()
}
