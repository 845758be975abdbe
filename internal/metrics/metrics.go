package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Subtitle search metrics
var (
	// SubtitleSearchesTotal counts searches by outcome: hit, miss, bad_request, error.
	SubtitleSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_searches_total",
			Help: "Total number of subtitle searches by outcome.",
		},
		[]string{"outcome"},
	)

	// ProviderRequestsTotal counts provider lookups by provider and status (success, error, skipped).
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_provider_requests_total",
			Help: "Total number of subtitle provider lookups.",
		},
		[]string{"provider", "status"},
	)

	// ProviderRequestDuration tracks provider lookup latency, retries included.
	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subtitle_provider_request_duration_seconds",
			Help:    "Duration of subtitle provider lookups.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// ProviderResults counts results contributed per provider before deduplication.
	ProviderResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_provider_results_total",
			Help: "Total number of subtitle results returned by providers.",
		},
		[]string{"provider"},
	)
)

// Subtitle download metrics
var (
	SubtitleDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_downloads_total",
			Help: "Total number of subtitle downloads.",
		},
		[]string{"status"},
	)
)

// HTTP API metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_http_requests_total",
			Help: "Total number of HTTP API requests.",
		},
		[]string{"handler", "code", "method"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subtitle_http_request_duration_seconds",
			Help:    "Duration of HTTP API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "code", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		SubtitleSearchesTotal,
		ProviderRequestsTotal,
		ProviderRequestDuration,
		ProviderResults,
		SubtitleDownloadsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
