// Package providers contains the upstream subtitle sources queried by the search aggregator.
package providers

import (
	"context"
	"net/http"

	"github.com/moviereview/subtitles/internal/models"
)

// Provider is an upstream subtitle source.
type Provider interface {
	Name() models.Source
	Search(ctx context.Context, req models.SearchRequest) ([]models.Subtitle, error)
}

// Download describes how to fetch a resolved subtitle file.
type Download struct {
	URL    string
	Format string
	Header http.Header
}

// Resolver turns a result URL into a directly downloadable one. Providers
// whose results point at an intermediate page, or whose file endpoints need
// special headers, implement it.
type Resolver interface {
	// CanResolve reports whether the URL belongs to this provider.
	CanResolve(rawURL string) bool
	Resolve(ctx context.Context, rawURL string) (*Download, error)
}
