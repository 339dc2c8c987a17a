// Package processor runs extraction over batches of texts with a bounded
// worker pool. Every pipeline invocation is independent, so parallelism
// needs no coordination beyond the pool itself.
package processor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/extract"
	"github.com/dharma-project/fir-extractor/internal/logger"
	"github.com/dharma-project/fir-extractor/internal/telemetry"
)

const defaultConcurrency = 10

// ErrBlankText is returned for batch items that are empty or
// whitespace-only; blank input is a caller error, not a pipeline failure.
var ErrBlankText = errors.New("text is empty or whitespace-only")

// Result holds the outcome for one batch item. Exactly one of Record and
// Err is set.
type Result struct {
	Index  int
	Record *domain.FIRRecord
	Err    error
}

// BatchExtractor processes batches of FIR texts in parallel.
type BatchExtractor struct {
	extractor   *extract.Extractor
	limiter     *RateLimiter
	concurrency int
	logger      logger.Logger
	telemetry   *telemetry.Provider
}

// NewBatchExtractor creates a batch processor. limiter may be nil to
// disable rate limiting.
func NewBatchExtractor(ex *extract.Extractor, limiter *RateLimiter, concurrency int, log logger.Logger, tp *telemetry.Provider) *BatchExtractor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchExtractor{
		extractor:   ex,
		limiter:     limiter,
		concurrency: concurrency,
		logger:      log,
		telemetry:   tp,
	}
}

// Process extracts every text in the batch and returns results in input
// order. Item failures (blank text, cancelled context) stay per-item; the
// batch itself only fails on a nil receiver misuse, never on content.
func (b *BatchExtractor) Process(ctx context.Context, texts []string) []Result {
	results := make([]Result, len(texts))
	if len(texts) == 0 {
		return results
	}

	start := time.Now()
	if b.telemetry != nil {
		b.telemetry.RecordBatch(ctx, len(texts))
	}

	jobs := make(chan int, len(texts))
	var wg sync.WaitGroup
	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = b.processOne(ctx, idx, texts[idx])
			}
		}()
	}

	for i := range texts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}

	b.logger.Info("batch extraction complete",
		logger.Int("batch_size", len(texts)),
		logger.Int("failed", failed),
		logger.Duration("duration", time.Since(start)))

	return results
}

func (b *BatchExtractor) processOne(ctx context.Context, idx int, text string) Result {
	if extract.IsBlank(text) {
		return Result{Index: idx, Err: ErrBlankText}
	}
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return Result{Index: idx, Err: err}
		}
	}
	rec := b.extractor.Extract(ctx, extract.InputBatch, text)
	return Result{Index: idx, Record: rec}
}
