package services

import (
	"context"

	"github.com/moviereview/subtitles/internal/models"
)

// SearchResult is the outcome of a subtitle search.
type SearchResult struct {
	Subtitles []models.Subtitle
	// Body is the JSON array served to clients. Cache hits return the stored
	// bytes untouched.
	Body      []byte
	FromCache bool
}

// SubtitleSearcher aggregates subtitle results from every configured provider
type SubtitleSearcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*SearchResult, error)
}
