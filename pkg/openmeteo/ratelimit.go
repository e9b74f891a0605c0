package openmeteo

import (
	"context"
	"fmt"

	// Packages
	rate "golang.org/x/time/rate"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// RateLimit wraps a Fetcher with a token bucket limiter
type RateLimit struct {
	source  Fetcher
	limiter *rate.Limiter
}

var _ Fetcher = (*RateLimit)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRateLimit creates a rate limited fetcher. rps is the maximum requests
// per second (can be fractional) and burst the maximum burst size. An rps
// of zero or less means no limit.
func NewRateLimit(source Fetcher, rps float64, burst int) *RateLimit {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &RateLimit{
		source:  source,
		limiter: rate.NewLimiter(limit, max(burst, 1)),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Forecast waits for the limiter then forwards to the source
func (r *RateLimit) Forecast(ctx context.Context, req *ForecastRequest) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.Forecast(ctx, req)
}
