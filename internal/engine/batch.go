package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nanalab/paperscan/internal/model"
)

// VerifyRequest names one manuscript to verify and its optional
// bibliography.
type VerifyRequest struct {
	DocumentPath     string
	BibliographyPath string
}

// BatchProcessor verifies multiple manuscripts concurrently.
//
// Design decision: Batch handling lives outside the Engine because the
// Engine stays focused on single-document verification; the processor
// owns ordering, the concurrency limit, and per-document failure
// isolation.
type BatchProcessor struct {
	// engineFactory creates an engine for each verification, so engine
	// state never leaks between documents.
	engineFactory func() *Engine

	// concurrency is the maximum number of concurrent verifications.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBatchConcurrency sets the maximum number of concurrent
// verifications. Default is 4.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The engineFactory is
// called once per document.
func NewBatchProcessor(engineFactory func() *Engine, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		engineFactory: engineFactory,
		concurrency:   4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch verifies the requested manuscripts concurrently and
// returns their reports in request order. A document whose verification
// fails gets a report carrying the error; its failure never aborts the
// other documents. The error return is non-nil only when the batch
// itself was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, requests []VerifyRequest) ([]*model.VerificationReport, error) {
	bp.logger.Info("starting batch verification",
		"total_documents", len(requests),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	reports := make([]*model.VerificationReport, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bp.logger.Info("verifying document",
				"document", req.DocumentPath,
				"index", i+1,
				"total", len(requests),
			)

			engine := bp.engineFactory()
			report, err := engine.VerifyFiles(gctx, req.DocumentPath, req.BibliographyPath)
			if err != nil {
				bp.logger.Warn("verification failed",
					"document", req.DocumentPath,
					"error", err,
				)
				report = model.NewVerificationReport(req.DocumentPath, "")
				report.BibliographyPath = req.BibliographyPath
				report.Error = err.Error()
			}
			reports[i] = report
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Info("batch verification complete",
		"total_documents", len(requests),
		"elapsed", time.Since(start),
	)
	return reports, err
}
