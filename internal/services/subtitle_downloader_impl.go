package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/klauspost/compress/gzip"
	"github.com/nwaples/rardecode/v2"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/metrics"
	"github.com/moviereview/subtitles/internal/models"
	"github.com/moviereview/subtitles/internal/parser"
	"github.com/moviereview/subtitles/internal/providers"
)

const defaultMaxDownloadBytes = 10 << 20

// ErrTooLarge is returned when a subtitle file or archive exceeds the size limit.
var ErrTooLarge = errors.New("subtitle file too large")

var subtitleExtensions = map[string]struct{}{
	".srt": {},
	".vtt": {},
	".ass": {},
	".ssa": {},
}

// DefaultSubtitleDownloader fetches subtitle files once, unpacks gzip, zip
// and rar payloads and parses the text into cues.
type DefaultSubtitleDownloader struct {
	httpClient   *http.Client
	resolvers    []providers.Resolver
	maxBytes     int64
	archiveCache *lru.LRU[string, []byte]
}

// NewSubtitleDownloader creates a downloader. Archives are kept for an hour
// (up to 100 of them) since several results often point at the same pack.
func NewSubtitleDownloader(httpClient *http.Client, resolvers []providers.Resolver, maxBytes int64) *DefaultSubtitleDownloader {
	if maxBytes <= 0 {
		maxBytes = defaultMaxDownloadBytes
	}
	return &DefaultSubtitleDownloader{
		httpClient:   httpClient,
		resolvers:    resolvers,
		maxBytes:     maxBytes,
		archiveCache: lru.NewLRU[string, []byte](100, nil, time.Hour),
	}
}

// DownloadSubtitle implements SubtitleDownloader.
func (d *DefaultSubtitleDownloader) DownloadSubtitle(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error) {
	result, err := d.download(ctx, req)
	metrics.SubtitleDownloadsTotal.WithLabelValues(downloadStatus(err)).Inc()
	return result, err
}

func (d *DefaultSubtitleDownloader) download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error) {
	logger := config.GetLogger()

	target := &providers.Download{
		URL:    strings.TrimSpace(req.URL),
		Format: strings.ToLower(strings.TrimSpace(req.Format)),
	}
	if target.URL == "" {
		return nil, apperrors.NewMissingURLError()
	}

	for _, r := range d.resolvers {
		if !r.CanResolve(target.URL) {
			continue
		}
		resolved, err := r.Resolve(ctx, target.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve subtitle URL: %w", err)
		}
		logger.Debug().Str("url", target.URL).Str("resolved", resolved.URL).Msg("Resolved subtitle URL")
		if resolved.Format == "" {
			resolved.Format = target.Format
		}
		target = resolved
		break
	}

	logger.Info().Str("url", target.URL).Str("format", target.Format).Msg("Downloading subtitle")

	content, err := d.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	text, err := d.unpack(content, target.Format)
	if err != nil {
		return nil, err
	}

	decoded, err := parser.DecodeSubtitleText(text)
	if err != nil {
		return nil, &apperrors.ErrSubtitleParse{Format: parser.FormatSRT, Err: err}
	}
	result, err := parser.ParseCues(decoded)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("url", target.URL).
		Str("format", result.Format).
		Int("cues", len(result.Cues)).
		Str("size", humanize.Bytes(uint64(len(content)))).
		Msg("Subtitle downloaded and parsed")
	return result, nil
}

// fetch performs a single GET. Archives are served from the cache when present.
func (d *DefaultSubtitleDownloader) fetch(ctx context.Context, target *providers.Download) ([]byte, error) {
	logger := config.GetLogger()
	archive := target.Format == "zip" || target.Format == "rar"
	if archive {
		if cached, ok := d.archiveCache.Get(target.URL); ok {
			logger.Debug().Str("url", target.URL).Int("size", len(cached)).Msg("Retrieved archive from cache")
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, values := range target.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &apperrors.ErrSubtitleResourceNotFound{URL: target.URL}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.ErrDownloadFailed{URL: target.URL, StatusCode: resp.StatusCode}
	}

	content, err := d.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if archive {
		d.archiveCache.Add(target.URL, content)
	}
	return content, nil
}

func (d *DefaultSubtitleDownloader) readLimited(r io.Reader) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, d.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > d.maxBytes {
		return nil, fmt.Errorf("%w: more than %s", ErrTooLarge, humanize.Bytes(uint64(d.maxBytes)))
	}
	return content, nil
}

// unpack returns the subtitle bytes inside content according to format.
func (d *DefaultSubtitleDownloader) unpack(content []byte, format string) ([]byte, error) {
	switch format {
	case "gz", "gzip":
		zr, err := gzip.NewReader(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer zr.Close()
		out, err := d.readLimited(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip stream: %w", err)
		}
		return out, nil
	case "zip":
		return d.extractFromZip(content)
	case "rar":
		return d.extractFromRar(content)
	default:
		return content, nil
	}
}

// extractFromZip returns the first subtitle file of a ZIP archive
func (d *DefaultSubtitleDownloader) extractFromZip(content []byte) ([]byte, error) {
	logger := config.GetLogger()

	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP archive: %w", err)
	}

	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() || !isSubtitleFile(file.Name) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s in ZIP: %w", file.Name, err)
		}
		defer rc.Close()

		logger.Debug().Str("filename", file.Name).Msg("Extracting subtitle from ZIP")
		out, err := d.readLimited(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s from ZIP: %w", file.Name, err)
		}
		return out, nil
	}

	return nil, &apperrors.ErrSubtitleNotFoundInArchive{Format: "zip", FileCount: len(zipReader.File)}
}

// extractFromRar returns the first subtitle file of a RAR archive
func (d *DefaultSubtitleDownloader) extractFromRar(content []byte) ([]byte, error) {
	logger := config.GetLogger()

	rr, err := rardecode.NewReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open RAR archive: %w", err)
	}

	count := 0
	for {
		header, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read RAR archive: %w", err)
		}
		count++
		if header.IsDir || !isSubtitleFile(header.Name) {
			continue
		}

		logger.Debug().Str("filename", header.Name).Msg("Extracting subtitle from RAR")
		out, err := d.readLimited(rr)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s from RAR: %w", header.Name, err)
		}
		return out, nil
	}

	return nil, &apperrors.ErrSubtitleNotFoundInArchive{Format: "rar", FileCount: count}
}

func isSubtitleFile(name string) bool {
	_, ok := subtitleExtensions[strings.ToLower(path.Ext(name))]
	return ok
}

func downloadStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, &apperrors.ErrMissingParameter{}):
		return "bad_request"
	case errors.Is(err, &apperrors.ErrSubtitleResourceNotFound{}):
		return "not_found"
	case errors.Is(err, &apperrors.ErrSubtitleParse{}):
		return "parse_error"
	default:
		return "error"
	}
}
