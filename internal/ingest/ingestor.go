package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/equicharts/race-results-tracker/constants"
	"github.com/equicharts/race-results-tracker/internal/async"
	"github.com/equicharts/race-results-tracker/internal/entity"
	"github.com/equicharts/race-results-tracker/internal/repository"
	"github.com/equicharts/race-results-tracker/internal/storage"
)

// Ingestor uploads a local chart PDF and starts a job for it.
type Ingestor struct {
	jobs   repository.JobRepository
	store  storage.ObjectStore
	queue  async.Queue
	format constants.OutputFormat
	logger *slog.Logger
}

func NewIngestor(jobs repository.JobRepository, store storage.ObjectStore, queue async.Queue, format constants.OutputFormat, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	if format == "" {
		format = constants.FormatCSV
	}
	return &Ingestor{jobs: jobs, store: store, queue: queue, format: format, logger: logger}
}

// IngestFile reads a PDF from disk, stores it under a content-hash path,
// and enqueues a processing job. The hash-derived path makes repeated drops
// of the same file overwrite rather than accumulate.
func (i *Ingestor) IngestFile(ctx context.Context, path string) (*entity.Job, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	if !AllowedExt(filepath.Ext(abs)) {
		return nil, fmt.Errorf("unsupported extension: %q", filepath.Ext(abs))
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	sum := sha256.Sum256(data)
	objectPath := "uploads/" + hex.EncodeToString(sum[:]) + ".pdf"

	if err := i.store.Upload(ctx, objectPath, data, "application/pdf"); err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectPath, err)
	}

	title := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	job, err := i.jobs.Create(ctx, title, objectPath, string(i.format))
	if err != nil {
		return nil, err
	}

	if err := i.queue.Enqueue(ctx, async.Job{JobID: job.ID, SubmittedAt: time.Now()}); err != nil {
		return nil, err
	}
	i.logger.Info("ingested file", "path", abs, "object", objectPath, "job_id", job.ID)
	return job, nil
}

// Run consumes watcher events until the context is canceled.
func (i *Ingestor) Run(ctx context.Context, events <-chan string, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-events:
			if !ok {
				return
			}
			if _, err := i.IngestFile(ctx, path); err != nil {
				i.logger.Error("ingest failed", "path", path, "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			i.logger.Error("watcher error", "error", err)
		}
	}
}
