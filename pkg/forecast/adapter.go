/*
forecast fetches a forecast for a location from Open-Meteo and renders it as
a report. The adapter owns the upstream client and its cache, retry and rate
limit layers, and is safe for concurrent use.
*/
package forecast

import (
	"context"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	openmeteo "github.com/mutablelogic/go-weather/pkg/openmeteo"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Adapter struct {
	// Options
	timezone   string
	days       uint
	ttl        time.Duration
	policy     openmeteo.RetryPolicy
	notify     func(error, time.Duration)
	rps        float64
	burst      int
	clientopts []client.ClientOpt
	source     openmeteo.Fetcher
	tracer     trace.Tracer

	// Layers
	cache   *openmeteo.Cache
	fetcher openmeteo.Fetcher
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultTimezone     = "America/Los_Angeles"
	DefaultForecastDays = 3
	DefaultCacheTTL     = time.Hour
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an adapter. Requests pass through the retry layer, then the
// cache, then the rate limiter before reaching the upstream client.
func New(opts ...Opt) (*Adapter, error) {
	adapter := &Adapter{
		timezone: DefaultTimezone,
		days:     DefaultForecastDays,
		ttl:      DefaultCacheTTL,
		policy:   openmeteo.DefaultRetryPolicy(),
		tracer:   noop.NewTracerProvider().Tracer("forecast"),
	}
	if err := adapter.apply(opts...); err != nil {
		return nil, err
	}

	// Create the upstream client
	if adapter.source == nil {
		if client, err := openmeteo.New(adapter.clientopts...); err != nil {
			return nil, err
		} else {
			adapter.source = client
		}
	}

	// Compose the layers
	adapter.cache = openmeteo.NewCache(openmeteo.NewRateLimit(adapter.source, adapter.rps, adapter.burst), adapter.ttl)
	adapter.fetcher = openmeteo.NewRetry(adapter.cache, adapter.policy, adapter.notify)

	// Return success
	return adapter, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Fetch returns the forecast report for a location as a string
func (adapter *Adapter) Fetch(ctx context.Context, latitude, longitude float64) (string, error) {
	report, err := adapter.Report(ctx, latitude, longitude)
	if err != nil {
		return "", err
	}
	return report.String(), nil
}

// Report returns the decoded forecast for a location. Invalid coordinates
// fail before any request is made.
func (adapter *Adapter) Report(ctx context.Context, latitude, longitude float64) (_ *Report, err error) {
	ctx, endSpan := otel.StartSpan(adapter.tracer, ctx, "Report",
		attribute.Float64("latitude", latitude),
		attribute.Float64("longitude", longitude),
	)
	defer func() { endSpan(err) }()

	req := adapter.Request(latitude, longitude)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	response, err := adapter.fetcher.Forecast(ctx, req)
	if err != nil {
		return nil, err
	}
	return decode(response, req.Current, req.Hourly, req.Daily)
}

// Request returns the upstream request for a location
func (adapter *Adapter) Request(latitude, longitude float64) *openmeteo.ForecastRequest {
	return &openmeteo.ForecastRequest{
		Latitude:     latitude,
		Longitude:    longitude,
		Current:      CurrentVariables,
		Hourly:       HourlyVariables,
		Daily:        DailyVariables,
		Timezone:     adapter.timezone,
		ForecastDays: adapter.days,
	}
}

// CacheStats returns the number of cache hits and misses
func (adapter *Adapter) CacheStats() (hits, misses uint64) {
	return adapter.cache.Stats()
}
