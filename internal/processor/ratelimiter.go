package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/dharma-project/fir-extractor/internal/logger"
)

const defaultRPS = 50

// RateLimiter bounds extraction throughput so a large batch cannot starve
// interactive requests.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewRateLimiter creates a rate limiter. rps <= 0 falls back to the
// default; burst <= 0 defaults to rps.
func NewRateLimiter(rps, burst int, log logger.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = rps
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  log,
	}
}

// Wait blocks until the rate limit allows one extraction.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("rate limiter wait failed", logger.Error(err))
		return err
	}
	return nil
}

// Allow reports whether an extraction may proceed without waiting.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
