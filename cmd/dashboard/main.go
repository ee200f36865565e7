package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"supervault_dashboard/internal/app/service"
	"supervault_dashboard/internal/bootstrap"
	"supervault_dashboard/internal/infrastructure/configloader"
	"supervault_dashboard/internal/infrastructure/restapi"
	"supervault_dashboard/internal/infrastructure/watchlistloader"
	"supervault_dashboard/internal/pkg/logger"
)

const defaultConfigPath = "config/config.yml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	logger.Info("SuperVault dashboard is starting", "env", cfg.Env, "config", configPath)

	appLogger := logger.NewSlogAdapter()

	components, err := bootstrap.Build(ctx, cfg, zapLogger, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}
	defer components.Close()

	dashboardService := components.DashboardService(cfg, appLogger)

	watchlist := watchlistloader.NewWatchlistFileLoader(cfg.Dashboard.WatchlistFile, appLogger.Info)
	warmupService := service.NewWarmupService(components.Pricing, components.Chains, watchlist, appLogger, cfg.Dashboard.WarmupConcurrency)
	go func() {
		warmCtx, warmCancel := context.WithTimeout(ctx, time.Duration(cfg.Dashboard.WarmupTimeoutSeconds)*time.Second)
		defer warmCancel()
		report, err := warmupService.Warm(warmCtx)
		if err != nil {
			logger.Warn("Cache warm-up finished with errors", "error", err)
		}
		logger.Info("Cache warm-up finished", "chains", report.Chains, "vaults", report.Vaults, "failed", report.Failed)
	}()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	routerOpts := restapi.RouterOptions{EnablePprof: cfg.Server.EnablePprof}
	if cfg.Swagger.Enabled {
		routerOpts.SwaggerSpecPath = cfg.Swagger.SpecPath
	}
	router := restapi.SetupRouter(
		restapi.NewDashboardHandler(dashboardService, appLogger),
		restapi.NewCacheHandler(dashboardService, appLogger),
		zapLogger,
		routerOpts,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signalChan
	logger.Info("Received shutdown signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server forced to shutdown", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}

	zapLogger.Info("SuperVault dashboard stopped", zap.String("env", cfg.Env))
}
