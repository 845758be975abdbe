package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/rs/zerolog"
)

// NewRouter wires the API routes and the middleware chain:
// logging > recovery > sentry > metrics > handler.
func NewRouter(h *Handler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /search", instrument("search", http.HandlerFunc(h.Search)))
	mux.Handle("GET /download", instrument("download", http.HandlerFunc(h.Download)))
	mux.HandleFunc("GET /healthz", h.Healthz)

	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})

	return withLogging(logger, withRecovery(sentryHandler.Handle(mux)))
}

// NewServer creates the public REST server.
func NewServer(address string, port int, handler http.Handler) *http.Server {
	if port == 0 {
		port = 5000
	}
	return &http.Server{
		Addr:              net.JoinHostPort(address, strconv.Itoa(port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
