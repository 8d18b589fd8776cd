package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payrecon/payrecon/internal/app"
	"github.com/payrecon/payrecon/internal/observability"
	"github.com/payrecon/payrecon/internal/provider"
	"github.com/payrecon/payrecon/internal/recon"
	reconhttp "github.com/payrecon/payrecon/internal/recon/http"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	metrics := observability.NewMetrics()

	providerClient := provider.NewClient(
		cfg.ProviderBaseURL,
		cfg.ProviderAPIKey,
		provider.WithPageSize(cfg.ProviderPageSize),
		provider.WithPageTimeout(cfg.ProviderPageTimeout),
		provider.WithPageObserver(metrics.PageFetched),
		provider.WithLogger(logger),
	)

	engine := recon.NewEngine(providerClient, logger).WithMetrics(metrics)
	reconHandler := reconhttp.NewHandler(logger, engine, cfg.ReportingCurrency)

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		ReconHandler: reconHandler,
		Metrics:      metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}
