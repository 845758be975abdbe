package services

import (
	"context"

	"github.com/moviereview/subtitles/internal/models"
)

// SubtitleDownloader fetches a subtitle file and normalizes it into cues
type SubtitleDownloader interface {
	DownloadSubtitle(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error)
}
