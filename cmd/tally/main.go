package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"tally/internal/cache"
	"tally/internal/cli"
	apphttp "tally/internal/http"
	"tally/internal/log"
	"tally/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cli.SetupLogger(nil)

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg).WithComponent(log.ComponentApp)

	result := cli.InitBackend(context.Background(), logger.Logger, cfg)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	aggregation := services.NewAggregationService(result.Store, cfg.CacheTTL)
	cacheManager := cache.NewManager()
	aggregation.RegisterCaches(cacheManager)
	cacheManager.StartCleanup(10 * time.Minute)

	hooks := services.Hooks{Publisher: result.Publisher(), Cache: aggregation}
	svc := apphttp.Services{
		Users:       services.NewUserService(result.Store, hooks),
		Expenses:    services.NewExpenseService(result.Store, hooks),
		Categories:  services.NewCategoryService(result.Store, hooks),
		Merge:       services.NewMergeService(result.Store, hooks),
		Settings:    services.NewSettingsService(result.Store),
		Transfer:    services.NewTransferService(result.Store, hooks),
		Aggregation: aggregation,
	}

	opts := apphttp.Options{
		Addr:               ":" + cfg.Port,
		DefaultUser:        cfg.DefaultUser,
		DefaultEmail:       cfg.DefaultEmail,
		UserHeader:         cfg.UserHeader,
		AllowedOrigins:     cfg.AllowedOrigins(),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ImportMaxBytes:     cfg.ImportMaxBytes,
		Ready:              result.Store.Ping,
	}
	if result.Events != nil {
		opts.EventsPublished = result.Events.Published
	}

	srv, err := apphttp.NewServer(opts, svc)
	if err != nil {
		logger.Error("Failed to create server", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cacheManager.Stop()
	})

	logger.Info("Starting tally server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"events", result.Events != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
