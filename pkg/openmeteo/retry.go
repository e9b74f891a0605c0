package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"time"

	// Packages
	backoff "github.com/cenkalti/backoff/v4"
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// RetryPolicy bounds the number of attempts and the backoff between them
type RetryPolicy struct {
	Retries         uint          // Retries after the first attempt
	InitialInterval time.Duration // Delay before the first retry
	Multiplier      float64       // Growth factor between retries
	MaxInterval     time.Duration // Ceiling for the delay
	Timeout         time.Duration // Per-attempt timeout, zero for none
}

// Retry wraps a Fetcher and retries transient failures
type Retry struct {
	source Fetcher
	policy RetryPolicy
	notify func(error, time.Duration)
}

var _ Fetcher = (*Retry)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// DefaultRetryPolicy makes five retries, starting at 200ms and doubling
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:         5,
		InitialInterval: 200 * time.Millisecond,
		Multiplier:      2,
		MaxInterval:     10 * time.Second,
		Timeout:         10 * time.Second,
	}
}

// NewRetry returns a Fetcher which retries source according to policy.
// The notify function, which may be nil, is called before each retry.
func NewRetry(source Fetcher, policy RetryPolicy, notify func(error, time.Duration)) *Retry {
	return &Retry{
		source: source,
		policy: policy,
		notify: notify,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (r *Retry) Forecast(ctx context.Context, req *ForecastRequest) (*Response, error) {
	var response *Response
	var attempts uint

	// Make a single attempt, with a timeout
	operation := func() error {
		attempts++
		actx, cancel := ctx, context.CancelFunc(func() {})
		if r.policy.Timeout > 0 {
			actx, cancel = context.WithTimeout(ctx, r.policy.Timeout)
		}
		defer cancel()

		var err error
		if response, err = r.source.Forecast(actx, req); err == nil {
			return nil
		} else if isPermanent(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}

	// Exponential backoff without jitter
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.Multiplier = r.policy.Multiplier
	b.MaxInterval = r.policy.MaxInterval
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	if b.Multiplier < 1 {
		b.Multiplier = 1
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.policy.Retries)), ctx), r.notify); err != nil {
		if ctx.Err() != nil || isPermanent(ctx, err) {
			return nil, err
		}
		if errors.Is(err, weather.ErrUpstreamUnavailable) {
			return nil, fmt.Errorf("after %d attempts: %w", attempts, err)
		}
		return nil, weather.ErrUpstreamUnavailable.Withf("after %d attempts: %v", attempts, err)
	}

	// Return success
	return response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// isPermanent returns true for failures which a retry cannot fix
func isPermanent(ctx context.Context, err error) bool {
	switch {
	case ctx.Err() != nil:
		return true
	case errors.Is(err, weather.ErrMalformedResponse):
		return true
	case errors.Is(err, weather.ErrInvalidCoordinates):
		return true
	case errors.Is(err, weather.ErrBadParameter):
		return true
	}
	return false
}
