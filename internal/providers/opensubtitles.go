package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
)

const defaultOpenSubtitlesBaseURL = "https://api.opensubtitles.com/api/v1"

// OpenSubtitlesConfig describes the OpenSubtitles REST client configuration.
type OpenSubtitlesConfig struct {
	APIKey     string
	UserAgent  string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenSubtitles queries the OpenSubtitles REST API.
type OpenSubtitles struct {
	apiKey    string
	userAgent string
	baseURL   *url.URL
	http      *http.Client
}

// NewOpenSubtitles creates the provider. A missing API key is not an error
// here: the provider stays registered and reports itself as not configured
// on every search.
func NewOpenSubtitles(cfg OpenSubtitlesConfig) (*OpenSubtitles, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultOpenSubtitlesBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles: parse base url: %w", err)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenSubtitles{
		apiKey:    strings.TrimSpace(cfg.APIKey),
		userAgent: userAgent,
		baseURL:   baseURL,
		http:      client,
	}, nil
}

func (o *OpenSubtitles) Name() models.Source {
	return models.SourceOpenSubtitles
}

// Search calls GET /subtitles with every parameter the request carries.
func (o *OpenSubtitles) Search(ctx context.Context, req models.SearchRequest) ([]models.Subtitle, error) {
	if o.apiKey == "" {
		return nil, &apperrors.ErrProviderNotConfigured{Provider: o.Name().String(), Reason: "api key missing"}
	}

	endpoint := o.baseURL.JoinPath("subtitles")
	params := url.Values{}
	if q := strings.TrimSpace(req.Query); q != "" {
		params.Set("query", q)
	}
	if imdb := sanitizeIMDBID(req.IMDBID); imdb != "" {
		params.Set("imdb_id", imdb)
	}
	if req.Season > 0 {
		params.Set("season_number", strconv.Itoa(req.Season))
	}
	if req.Episode > 0 {
		params.Set("episode_number", strconv.Itoa(req.Episode))
	}
	if req.Language != "" {
		params.Set("languages", req.Language)
	}
	if req.MovieHash != "" {
		params.Set("moviehash", req.MovieHash)
	}
	endpoint.RawQuery = params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles: build search request: %w", err)
	}
	httpReq.Header.Set("Api-Key", o.apiKey)
	httpReq.Header.Set("User-Agent", o.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := o.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("opensubtitles: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &apperrors.ErrProviderStatus{Provider: o.Name().String(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload openSubtitlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("opensubtitles: decode search response: %w", err)
	}

	subtitles := make([]models.Subtitle, 0, len(payload.Data))
	for _, entry := range payload.Data {
		attrs := entry.Attributes
		// Entries without a file cannot be downloaded
		if len(attrs.Files) == 0 {
			continue
		}
		file := attrs.Files[0]

		sub := models.Subtitle{
			ID:               entry.ID,
			Name:             attrs.Release,
			Language:         attrs.Language,
			Source:           models.SourceOpenSubtitles,
			DownloadURL:      file.FileURL,
			Format:           file.Format,
			Size:             file.FileSize,
			Hash:             file.FileHash,
			MovieHashMatch:   attrs.MovieHashMatch,
			HearingImpaired:  attrs.HearingImpaired,
			ForeignPartsOnly: attrs.ForeignPartsOnly,
			DownloadCount:    attrs.DownloadCount,
			Release:          ParseRelease(attrs.Release),
		}
		if sub.ID == "" && file.FileID > 0 {
			sub.ID = strconv.FormatInt(file.FileID, 10)
		}
		if t, err := time.Parse(time.RFC3339, attrs.UploadDate); err == nil {
			sub.UploadedAt = t.UTC()
		}
		subtitles = append(subtitles, sub)
	}

	return subtitles, nil
}

func sanitizeIMDBID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	value = strings.TrimPrefix(strings.ToLower(value), "tt")
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return ""
	}
	return value
}

type openSubtitlesResponse struct {
	Data []struct {
		ID         string                  `json:"id"`
		Attributes openSubtitlesAttributes `json:"attributes"`
	} `json:"data"`
}

type openSubtitlesAttributes struct {
	Language         string `json:"language"`
	Release          string `json:"release"`
	DownloadCount    int    `json:"download_count"`
	HearingImpaired  bool   `json:"hearing_impaired"`
	ForeignPartsOnly bool   `json:"foreign_parts_only"`
	MovieHashMatch   bool   `json:"moviehash_match"`
	UploadDate       string `json:"upload_date"`
	Files            []struct {
		FileID   int64  `json:"file_id"`
		FileName string `json:"file_name"`
		FileURL  string `json:"file_url"`
		Format   string `json:"format"`
		FileSize int64  `json:"file_size"`
		FileHash string `json:"file_hash"`
	} `json:"files"`
}
