package main

import (
	"context"
	"os"
	"time"

	"tally/internal/cli"
	"tally/internal/log"
	"tally/internal/services"
	gsheet "tally/internal/sheets/google"
	"tally/internal/worker"
)

const mirrorBatchSize = 50

func main() {
	cli.LoadEnvFile()
	cli.SetupLogger(nil)

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg).WithComponent(log.ComponentWorker)
	logger.Info("Starting tally-worker")

	if err := cfg.ValidateMirror(); err != nil {
		logger.Error("Mirror configuration invalid", log.FieldError, err)
		os.Exit(1)
	}

	result := cli.InitBackend(context.Background(), logger.Logger, cfg)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()
	if result.Events == nil {
		logger.Error("AMQP broker unreachable, nothing to consume", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		os.Exit(1)
	}

	clientJSON, tokenJSON, err := gsheet.LoadCredentials(
		cfg.GoogleOAuthClientFile, cfg.GoogleOAuthClientJSON,
		cfg.GoogleOAuthTokenFile, cfg.GoogleOAuthTokenJSON)
	if err != nil {
		logger.Error("Failed to load Google credentials", log.FieldError, err)
		os.Exit(1)
	}

	// The token source keeps the context it was built with, so it must outlive startup.
	sheetsClient, err := gsheet.New(context.Background(), gsheet.Config{
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		SheetName:     cfg.GoogleSheetName,
		ClientJSON:    clientJSON,
		TokenJSON:     tokenJSON,
	})
	if err == nil {
		initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
		err = sheetsClient.EnsureHeader(initCtx)
		cancelInit()
	}
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	mirror := worker.NewMirrorWorker(result.Store, sheetsClient, mirrorBatchSize)
	processor := services.NewEventProcessor(result.Events, mirror.HandleEvent, services.DefaultEventProcessorConfig())

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func(ctx context.Context) {
		if err := processor.Stop(ctx); err != nil {
			logger.Error("Event processor stop failed", log.FieldError, err)
		}
		stats := processor.Stats()
		logger.Info("Worker totals",
			"processed", stats.Processed,
			"retried", stats.Retried,
			"dropped", stats.Dropped)
	})

	if err := processor.Start(ctx); err != nil {
		logger.Error("Failed to start event processor", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Mirroring expense events",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName,
		"queue", cfg.AMQPQueue)

	cli.WaitForShutdown(ctx, done)
}
