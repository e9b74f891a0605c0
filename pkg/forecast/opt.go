package forecast

import (
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	weather "github.com/mutablelogic/go-weather"
	openmeteo "github.com/mutablelogic/go-weather/pkg/openmeteo"
	trace "go.opentelemetry.io/otel/trace"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Adapter) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (adapter *Adapter) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(adapter); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithClientOpts sets options for the upstream HTTP client, for example
// client.OptEndpoint, client.OptTimeout or client.OptTrace
func WithClientOpts(opts ...client.ClientOpt) Opt {
	return func(adapter *Adapter) error {
		adapter.clientopts = append(adapter.clientopts, opts...)
		return nil
	}
}

// WithFetcher replaces the upstream HTTP client. The cache, retry and rate
// limit layers are still applied.
func WithFetcher(v openmeteo.Fetcher) Opt {
	return func(adapter *Adapter) error {
		if v == nil {
			return weather.ErrBadParameter.With("fetcher is nil")
		}
		adapter.source = v
		return nil
	}
}

// WithTimezone sets the timezone for daily aggregation
func WithTimezone(v string) Opt {
	return func(adapter *Adapter) error {
		if v == "" {
			return weather.ErrBadParameter.With("timezone is empty")
		}
		adapter.timezone = v
		return nil
	}
}

// WithForecastDays sets the forecast horizon
func WithForecastDays(v uint) Opt {
	return func(adapter *Adapter) error {
		if v < 1 || v > openmeteo.MaxForecastDays {
			return weather.ErrBadParameter.Withf("forecast days must be between 1 and %d", openmeteo.MaxForecastDays)
		}
		adapter.days = v
		return nil
	}
}

// WithCacheTTL sets how long responses are kept. Zero disables the cache.
func WithCacheTTL(v time.Duration) Opt {
	return func(adapter *Adapter) error {
		adapter.ttl = v
		return nil
	}
}

// WithRetryPolicy sets the number of retries and the backoff between them
func WithRetryPolicy(v openmeteo.RetryPolicy) Opt {
	return func(adapter *Adapter) error {
		adapter.policy = v
		return nil
	}
}

// WithRetryNotify sets a function which is called before each retry
func WithRetryNotify(fn func(error, time.Duration)) Opt {
	return func(adapter *Adapter) error {
		adapter.notify = fn
		return nil
	}
}

// WithRateLimit limits upstream requests to rps per second with the given
// burst size
func WithRateLimit(rps float64, burst int) Opt {
	return func(adapter *Adapter) error {
		if rps < 0 {
			return weather.ErrBadParameter.With("rate limit is negative")
		}
		adapter.rps = rps
		adapter.burst = burst
		return nil
	}
}

// WithTracer records a span for each report
func WithTracer(v trace.Tracer) Opt {
	return func(adapter *Adapter) error {
		if v == nil {
			return weather.ErrBadParameter.With("tracer is nil")
		}
		adapter.tracer = v
		return nil
	}
}
