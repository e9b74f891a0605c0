package openmeteo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	"github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// FAKE FETCHER

// countingFetcher returns errs in order, then response
type countingFetcher struct {
	calls    atomic.Int32
	errs     []error
	response *Response
}

func (f *countingFetcher) Forecast(ctx context.Context, req *ForecastRequest) (*Response, error) {
	n := int(f.calls.Add(1))
	if n <= len(f.errs) {
		return nil, f.errs[n-1]
	}
	if f.response != nil {
		return f.response, nil
	}
	return &Response{Latitude: req.Latitude, Longitude: req.Longitude}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Cache_001(t *testing.T) {
	assert := assert.New(t)
	source := new(countingFetcher)
	cache := NewCache(source, time.Hour)

	req := &ForecastRequest{Latitude: 47.6062, Longitude: -122.3321}
	first, err := cache.Forecast(context.Background(), req)
	assert.NoError(err)
	second, err := cache.Forecast(context.Background(), req)
	assert.NoError(err)

	// Second call is served from the cache
	assert.Same(first, second)
	assert.Equal(int32(1), source.calls.Load())

	hits, misses := cache.Stats()
	assert.Equal(uint64(1), hits)
	assert.Equal(uint64(1), misses)
	assert.Equal(1, cache.Len())
}

func Test_Cache_002(t *testing.T) {
	assert := assert.New(t)
	source := new(countingFetcher)
	cache := NewCache(source, time.Hour)

	// Different coordinates are different entries
	_, err := cache.Forecast(context.Background(), &ForecastRequest{Latitude: 1, Longitude: 1})
	assert.NoError(err)
	_, err = cache.Forecast(context.Background(), &ForecastRequest{Latitude: 2, Longitude: 2})
	assert.NoError(err)
	assert.Equal(int32(2), source.calls.Load())
	assert.Equal(2, cache.Len())
}

func Test_Cache_003(t *testing.T) {
	assert := assert.New(t)
	source := new(countingFetcher)
	cache := NewCache(source, time.Hour)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	req := &ForecastRequest{Latitude: 47.6062, Longitude: -122.3321}
	_, err := cache.Forecast(context.Background(), req)
	assert.NoError(err)

	// Within the window
	now = now.Add(59 * time.Minute)
	_, err = cache.Forecast(context.Background(), req)
	assert.NoError(err)
	assert.Equal(int32(1), source.calls.Load())

	// Expired
	now = now.Add(2 * time.Minute)
	_, err = cache.Forecast(context.Background(), req)
	assert.NoError(err)
	assert.Equal(int32(2), source.calls.Load())
}

func Test_Cache_004(t *testing.T) {
	assert := assert.New(t)
	source := &countingFetcher{errs: []error{weather.ErrUpstreamUnavailable}}
	cache := NewCache(source, time.Hour)

	// Errors are not stored
	req := &ForecastRequest{Latitude: 47.6062, Longitude: -122.3321}
	_, err := cache.Forecast(context.Background(), req)
	assert.True(errors.Is(err, weather.ErrUpstreamUnavailable))
	assert.Equal(0, cache.Len())

	_, err = cache.Forecast(context.Background(), req)
	assert.NoError(err)
	assert.Equal(int32(2), source.calls.Load())
}

func Test_Cache_005(t *testing.T) {
	assert := assert.New(t)
	source := new(countingFetcher)
	cache := NewCache(source, 0)

	// Zero ttl passes every call through
	req := &ForecastRequest{Latitude: 47.6062, Longitude: -122.3321}
	for i := 0; i < 3; i++ {
		_, err := cache.Forecast(context.Background(), req)
		assert.NoError(err)
	}
	assert.Equal(int32(3), source.calls.Load())
	assert.Equal(0, cache.Len())
}
