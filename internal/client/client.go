package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/moviereview/subtitles/internal/config"
)

const defaultTimeout = 30 * time.Second

// NewHTTPClient builds the HTTP client shared by subtitle providers and the
// downloader: optional proxy, configured timeout and User-Agent, and
// transparent gzip/brotli/zstd response decoding.
func NewHTTPClient(cfg *config.Config) *http.Client {
	logger := config.GetLogger()
	timeout := config.ParseDuration("client_timeout", cfg.ClientTimeout, defaultTimeout)

	// Clone DefaultTransport to keep its pooling, HTTP/2 and dial timeouts
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(baseTransport, userAgent),
	}
}
