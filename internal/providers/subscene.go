package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
	"github.com/moviereview/subtitles/internal/parser"
)

const defaultSubsceneBaseURL = "https://subscene.com"

// subsceneLanguages maps ISO 639-1 codes to the language names subscene prints.
var subsceneLanguages = map[string]string{
	"ar": "Arabic",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"fa": "Farsi/Persian",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"hu": "Hungarian",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"nl": "Dutch",
	"no": "Norwegian",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sv": "Swedish",
	"tr": "Turkish",
	"vi": "Vietnamese",
	"zh": "Chinese BG code",
}

// SubsceneConfig describes the subscene scraper configuration.
type SubsceneConfig struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Subscene scrapes subscene.com. It searches by title only, so requests that
// carry just an IMDB id contribute nothing.
type Subscene struct {
	baseURL      *url.URL
	http         *http.Client
	searchParser parser.Parser[parser.SubsceneTitle]
	titleParser  parser.Parser[parser.SubsceneRow]
}

// NewSubscene creates the scraper
func NewSubscene(cfg SubsceneConfig) (*Subscene, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultSubsceneBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("subscene: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Subscene{
		baseURL:      baseURL,
		http:         client,
		searchParser: parser.NewSubsceneSearchParser(),
		titleParser:  parser.NewSubsceneTitleParser(),
	}, nil
}

func (s *Subscene) Name() models.Source {
	return models.SourceSubscene
}

// Search finds the title closest to the query, then lists its subtitles in
// the requested language.
func (s *Subscene) Search(ctx context.Context, req models.SearchRequest) ([]models.Subtitle, error) {
	logger := config.GetLogger()
	query := strings.TrimSpace(req.Query)
	if query == "" {
		logger.Debug().Str("imdb_id", req.IMDBID).Msg("Subscene cannot search by IMDB id, skipping")
		return nil, nil
	}

	form := url.Values{"query": {query}}
	titles, err := fetchAndParse(ctx, s, http.MethodPost, s.baseURL.JoinPath("subtitles", "searchbytitle").String(), strings.NewReader(form.Encode()), s.searchParser)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, nil
	}

	needle := normalizeTitle(query)
	best := lo.MinBy(titles, func(a, b parser.SubsceneTitle) bool {
		return levenshtein.Distance(needle, normalizeTitle(a.Name)) < levenshtein.Distance(needle, normalizeTitle(b.Name))
	})
	logger.Debug().Str("query", query).Str("title", best.Name).Int("year", best.Year).Msg("Matched subscene title")

	titleURL, err := s.baseURL.Parse(best.Path)
	if err != nil {
		return nil, fmt.Errorf("subscene: parse title path %q: %w", best.Path, err)
	}
	rows, err := fetchAndParse(ctx, s, http.MethodGet, titleURL.String(), nil, s.titleParser)
	if err != nil {
		return nil, err
	}

	wantLanguage := subsceneLanguageName(req.Language)
	subtitles := make([]models.Subtitle, 0, len(rows))
	for _, row := range rows {
		if wantLanguage != "" && !strings.EqualFold(row.Language, wantLanguage) {
			continue
		}
		release := ParseRelease(row.Release)
		if !matchesEpisode(release, req) {
			continue
		}
		detailURL, err := s.baseURL.Parse(row.Path)
		if err != nil {
			continue
		}

		language := req.Language
		if language == "" {
			language = row.Language
		}
		subtitles = append(subtitles, models.Subtitle{
			ID:              row.ID,
			Name:            row.Release,
			Language:        language,
			Source:          models.SourceSubscene,
			DownloadURL:     detailURL.String(),
			Format:          "zip",
			HearingImpaired: row.HearingImpaired,
			Release:         release,
		})
	}

	return subtitles, nil
}

// CanResolve reports whether the URL is a subscene subtitle detail page.
func (s *Subscene) CanResolve(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(u.Host, s.baseURL.Host) {
		return false
	}
	// Detail pages look like /subtitles/<title>/<language>/<id>
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	return len(parts) == 4 && parts[0] == "subtitles"
}

// Resolve reads the detail page and returns the archive behind its download button.
func (s *Subscene) Resolve(ctx context.Context, rawURL string) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("subscene: build detail request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subscene: detail request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.ErrProviderStatus{Provider: s.Name().String(), StatusCode: resp.StatusCode}
	}

	body, err := parser.NewUTF8Reader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("subscene: decode detail page: %w", err)
	}
	link, err := parser.ParseSubsceneDownloadLink(body)
	if err != nil {
		return nil, fmt.Errorf("subscene: %w", err)
	}
	downloadURL, err := resp.Request.URL.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("subscene: parse download link %q: %w", link, err)
	}

	return &Download{URL: downloadURL.String(), Format: "zip"}, nil
}

func fetchAndParse[T any](ctx context.Context, s *Subscene, method, target string, body io.Reader, p parser.Parser[T]) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("subscene: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subscene: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.ErrProviderStatus{Provider: s.Name().String(), StatusCode: resp.StatusCode}
	}

	utf8Body, err := parser.NewUTF8Reader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("subscene: decode response: %w", err)
	}
	return p.ParseHtml(utf8Body)
}

func subsceneLanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if name, ok := subsceneLanguages[code]; ok {
		return name
	}
	return code
}

// matchesEpisode drops releases that name a different episode than requested.
// Releases without parsable numbering are kept.
func matchesEpisode(release *models.Release, req models.SearchRequest) bool {
	if release == nil {
		return true
	}
	if req.Season > 0 && release.Season > 0 && release.Season != req.Season {
		return false
	}
	if req.Episode > 0 && release.Episode > 0 && release.Episode != req.Episode {
		return false
	}
	return true
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
