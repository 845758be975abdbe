package httpserver

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/models"
	"github.com/moviereview/subtitles/internal/services"
	"github.com/rs/zerolog/hlog"
)

const (
	searchFailedMessage   = "Failed to search subtitles"
	downloadFailedMessage = "Failed to download subtitle"
)

// Handler serves the subtitle search and download endpoints.
type Handler struct {
	searcher   services.SubtitleSearcher
	downloader services.SubtitleDownloader
}

// NewHandler creates a Handler backed by the given services.
func NewHandler(searcher services.SubtitleSearcher, downloader services.SubtitleDownloader) *Handler {
	return &Handler{searcher: searcher, downloader: downloader}
}

// Search handles GET /search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req := models.SearchRequestFromQuery(r.URL.Query())

	result, err := h.searcher.Search(r.Context(), req)
	if err != nil {
		var missing *apperrors.ErrMissingParameter
		if errors.As(err, &missing) {
			writeError(w, r, http.StatusBadRequest, missing.Message)
			return
		}
		reportError(r, err, "Subtitle search failed")
		writeError(w, r, http.StatusInternalServerError, searchFailedMessage)
		return
	}

	hlog.FromRequest(r).Debug().
		Int("results", len(result.Subtitles)).
		Bool("from_cache", result.FromCache).
		Msg("Subtitle search served")
	writeRaw(w, r, result.Body)
}

// Download handles GET /download.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := models.DownloadRequest{
		URL:    q.Get("url"),
		Format: q.Get("format"),
	}

	result, err := h.downloader.DownloadSubtitle(r.Context(), req)
	if err != nil {
		var missing *apperrors.ErrMissingParameter
		if errors.As(err, &missing) {
			writeError(w, r, http.StatusBadRequest, missing.Message)
			return
		}
		reportError(r, err, "Subtitle download failed")
		writeError(w, r, http.StatusInternalServerError, downloadFailedMessage)
		return
	}

	cues := result.Cues
	if cues == nil {
		cues = []models.Cue{}
	}
	writeJSON(w, r, http.StatusOK, cues)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// reportError logs err with the request logger and forwards it to Sentry.
func reportError(r *http.Request, err error, msg string) {
	hlog.FromRequest(r).Error().Err(err).Msg(msg)
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	}
}
