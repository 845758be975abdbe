package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/moviereview/subtitles/internal/config"
	grpcserver "github.com/moviereview/subtitles/internal/grpc"
	"github.com/moviereview/subtitles/internal/httpserver"
	"github.com/moviereview/subtitles/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST, gRPC and metrics servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry, continuing without it")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info().
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Bool("grpc_enabled", cfg.GRPC.Enabled).
		Msg("Application started with configuration")

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 3)

	handler := httpserver.NewRouter(httpserver.NewHandler(a.searcher, a.downloader), logger)
	httpServer := httpserver.NewServer(cfg.Server.Address, cfg.Server.Port, handler)
	go func() {
		logger.Info().Str("address", httpServer.Addr).Msg("Starting HTTP API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve http: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve metrics: %w", err)
			}
		}()
	}

	var (
		grpcServer   *grpc.Server
		healthServer *health.Server
	)
	if cfg.GRPC.Enabled {
		grpcServer, healthServer = grpcserver.NewGRPCServer(a.searcher, a.downloader)
		address := net.JoinHostPort(cfg.Server.Address, fmt.Sprint(cfg.GRPC.Port))
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("listen %s: %w", address, err)
		}
		go func() {
			logger.Info().Str("address", address).Msg("Starting gRPC server")
			if err := grpcServer.Serve(listener); err != nil {
				errCh <- fmt.Errorf("serve grpc: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	case runErr = <-errCh:
		logger.Error().Err(runErr).Msg("Server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if grpcServer != nil {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown metrics server")
		}
	}

	logger.Info().Msg("Server stopped gracefully")
	return runErr
}
