// Package pipeline coordinates the stages of a job: fetch the document,
// extract page text, parse the result table, encode it, and store the output.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/equicharts/race-results-tracker/constants"
	"github.com/equicharts/race-results-tracker/internal/chart"
	"github.com/equicharts/race-results-tracker/internal/export"
	"github.com/equicharts/race-results-tracker/internal/pagetext"
	"github.com/equicharts/race-results-tracker/internal/repository"
	"github.com/equicharts/race-results-tracker/internal/storage"
)

// Processor runs a job end to end and records the outcome on the job row.
type Processor struct {
	jobs      repository.JobRepository
	store     storage.ObjectStore
	extractor pagetext.Extractor
	signedTTL time.Duration
	logger    *slog.Logger
}

func NewProcessor(jobs repository.JobRepository, store storage.ObjectStore, extractor pagetext.Extractor, signedTTL time.Duration, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if signedTTL <= 0 {
		signedTTL = 72 * time.Hour
	}
	return &Processor{
		jobs:      jobs,
		store:     store,
		extractor: extractor,
		signedTTL: signedTTL,
		logger:    logger,
	}
}

// ProcessJob drives one job from processing to completed or failed. The
// returned error reports the failure to the worker loop; the job row is
// already marked, stamped with the claiming worker, by the time it returns.
func (p *Processor) ProcessJob(ctx context.Context, workerID int, jobID uuid.UUID) error {
	start := time.Now()
	worker := fmt.Sprintf("worker-%d", workerID)

	job, err := p.jobs.Get(ctx, jobID)
	if err != nil {
		p.logger.Error("processor.load.failed", "job_id", jobID, "err", err)
		return err
	}

	pdf, err := p.store.Download(ctx, job.PDFPath)
	if err != nil {
		return p.fail(ctx, jobID, worker, fmt.Errorf("download %s: %w", job.PDFPath, err))
	}

	pages, err := p.extractor.ExtractPages(ctx, pdf)
	if err != nil {
		return p.fail(ctx, jobID, worker, fmt.Errorf("extract page text: %w", err))
	}

	// Pages without a recognizable chart contribute nothing; an empty
	// table is still a valid (header-only) result.
	rows := chart.ExtractTable(pages)
	p.logger.Info("processor.parse.ok", "job_id", jobID, "pages", len(pages), "rows", len(rows))

	format, ok := constants.ParseFormat(job.Format)
	if !ok {
		return p.fail(ctx, jobID, worker, fmt.Errorf("unknown output format %q", job.Format))
	}

	var encoded []byte
	switch format {
	case constants.FormatXLSX:
		encoded, err = export.EncodeXLSX(rows)
	default:
		encoded = chart.EncodeCSV(rows)
	}
	if err != nil {
		return p.fail(ctx, jobID, worker, fmt.Errorf("encode %s: %w", format, err))
	}

	outPath := fmt.Sprintf("outputs/job-%s-%d.%s", jobID, time.Now().Unix(), format)
	if err := p.store.Upload(ctx, outPath, encoded, format.ContentType()); err != nil {
		return p.fail(ctx, jobID, worker, fmt.Errorf("upload %s: %w", outPath, err))
	}

	signedURL, err := p.store.SignedURL(ctx, outPath, p.signedTTL)
	if err != nil {
		return p.fail(ctx, jobID, worker, fmt.Errorf("sign %s: %w", outPath, err))
	}

	// The object path is kept alongside the signed URL so the delete
	// endpoint can remove the output, not just the input.
	if err := p.jobs.MarkCompleted(ctx, jobID, signedURL, outPath, worker); err != nil {
		p.logger.Error("processor.complete.failed", "job_id", jobID, "err", err)
		return err
	}
	p.logger.Info("processor.ok",
		"job_id", jobID,
		"rows", len(rows),
		"output", outPath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// fail records the failure on the job row. The record update is best
// effort: a failed update is logged but the original error is returned.
func (p *Processor) fail(ctx context.Context, jobID uuid.UUID, worker string, cause error) error {
	p.logger.Error("processor.failed", "job_id", jobID, "err", cause)
	if err := p.jobs.MarkFailed(ctx, jobID, cause.Error(), worker); err != nil {
		p.logger.Error("processor.mark_failed.failed", "job_id", jobID, "err", err)
	}
	return cause
}
