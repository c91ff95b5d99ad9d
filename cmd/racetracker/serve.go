package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/equicharts/race-results-tracker/internal/async"
	"github.com/equicharts/race-results-tracker/internal/common"
	"github.com/equicharts/race-results-tracker/internal/ingest"
	"github.com/equicharts/race-results-tracker/internal/pagetext"
	"github.com/equicharts/race-results-tracker/internal/pipeline"
	"github.com/equicharts/race-results-tracker/internal/repository"
	"github.com/equicharts/race-results-tracker/internal/server"
	"github.com/equicharts/race-results-tracker/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the job API and background workers",
	Long: `Start the HTTP API server together with the worker pool that
processes queued extraction jobs.

The server provides:
  /healthz     - health check (includes a database ping)
  /jobs        - create, list, fetch, and delete extraction jobs

If ingest.watch_dir is configured, PDFs dropped into that directory are
uploaded and queued automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cfg, err := common.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			logger.Error("invalid configuration", "error", err)
			return err
		}

		db, pool, err := repository.Open(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer repository.Close(db, pool, logger)

		if err := repository.EnsureSchema(ctx, db); err != nil {
			logger.Error("failed to ensure schema", "error", err)
			return err
		}
		if err := repository.HealthCheck(ctx, db, cfg.Database.HealthTimeout, logger); err != nil {
			logger.Error("failed to ping database", "error", err)
			return err
		}

		store := storage.NewClient(cfg.Storage.BaseURL, cfg.Storage.Bucket, cfg.Storage.APIKey, logger)
		extractor := pagetext.NewPDFExtractor(pagetext.Config{
			PdftotextBin: cfg.Extract.PdftotextBin,
			MaxPages:     cfg.Extract.MaxPages,
		}, logger)

		jobsRepo := repository.NewJobRepository(db, logger)
		processor := pipeline.NewProcessor(jobsRepo, store, extractor, cfg.Storage.SignedURLTTL, logger)

		queue := async.NewProcessorQueue(processor, logger,
			async.WithWorkers(cfg.Worker.Count),
			async.WithQueueSize(cfg.Worker.QueueSize),
			async.WithProcessTimeout(cfg.Worker.JobTimeout),
		)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			queue.Shutdown(shutdownCtx)
		}()

		if cfg.Ingest.WatchDir != "" {
			events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
				Roots:       []string{cfg.Ingest.WatchDir},
				InitialScan: cfg.Ingest.InitialScan,
				Debounce:    cfg.Ingest.Debounce,
			})
			if err != nil {
				logger.Error("failed to start drop-folder watcher", "error", err)
				return err
			}
			ingestor := ingest.NewIngestor(jobsRepo, store, queue, "", logger)
			go ingestor.Run(ctx, events, errs)
			logger.Info("watching drop folder", "dir", cfg.Ingest.WatchDir)
		}

		jobsHandler := server.NewJobsHandler(jobsRepo, queue, store, logger)
		srv := server.New(cfg.Server.Addr, db, jobsHandler, logger)
		return srv.Start(ctx)
	},
}
