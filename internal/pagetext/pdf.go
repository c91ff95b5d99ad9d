// Package pagetext turns PDF documents into per-page, layout-preserved
// text. Row parsing depends on the original column positions, so extraction
// goes through pdftotext in -layout mode rather than a reflowing library.
package pagetext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/equicharts/race-results-tracker/internal/common"
)

// Extractor is the document-to-pages stage of the pipeline.
type Extractor interface {
	ExtractPages(ctx context.Context, pdf []byte) ([]string, error)
}

// ErrNotPDF reports that the input bytes are not a readable PDF document.
var ErrNotPDF = common.NewAppError("INVALID_PDF", "input is not a valid PDF", common.ErrInvalidInput)

type Config struct {
	PdftotextBin string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages     int    // 0 = no limit
}

type PDFExtractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewPDFExtractor(cfg Config, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PdftotextBin == "" {
		cfg.PdftotextBin = "pdftotext"
	}
	return &PDFExtractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner, for tests.
func (e *PDFExtractor) WithRunner(r Runner) *PDFExtractor {
	e.runner = r
	return e
}

// ExtractPages validates the document and returns one layout-preserved text
// string per page.
func (e *PDFExtractor) ExtractPages(ctx context.Context, pdf []byte) ([]string, error) {
	pageCount, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		e.logger.Warn("pdf validation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	e.logger.Debug("pdf validated", "pages", pageCount, "bytes", len(pdf))

	tmp, err := os.CreateTemp("", "racechart-*.pdf")
	if err != nil {
		return nil, common.WrapError(err, "create temp pdf")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(pdf); err != nil {
		_ = tmp.Close()
		return nil, common.WrapError(err, "write temp pdf")
	}
	if err := tmp.Close(); err != nil {
		return nil, common.WrapError(err, "close temp pdf")
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.PdftotextBin,
		"-layout", "-enc", "UTF-8", "-eol", "unix", tmp.Name(), "-")
	if err != nil {
		return nil, common.NewAppError("PDFTOTEXT_FAILED",
			truncate(string(errb), 1<<10), err)
	}

	// A form-feed \f is used as page separator by default, including one
	// after the final page.
	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		e.logger.Warn("truncating document", "pages", len(pages), "max_pages", e.cfg.MaxPages)
		pages = pages[:e.cfg.MaxPages]
	}
	e.logger.Info("extracted page text", "pages", len(pages))
	return pages, nil
}
