package forecast_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	forecast "github.com/mutablelogic/go-weather/pkg/forecast"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTool(t *testing.T) (tool.Tool, *staticFetcher) {
	t.Helper()
	source := &staticFetcher{body: mockForecast(forecast.CurrentVariables, forecast.HourlyVariables, forecast.DailyVariables)}
	adapter, err := forecast.New(forecast.WithFetcher(source))
	require.NoError(t, err)
	return forecast.NewTool(adapter), source
}

func Test_Tool_001(t *testing.T) {
	assert := assert.New(t)
	tool, _ := newTestTool(t)

	assert.Equal("weather_forecast", tool.Name())
	assert.NotEmpty(tool.Description())

	schema, err := tool.Schema()
	assert.NoError(err)
	if assert.NotNil(schema) {
		assert.Contains(schema.Properties, "latitude")
		assert.Contains(schema.Properties, "longitude")
		assert.ElementsMatch([]string{"latitude", "longitude"}, schema.Required)
		assert.Equal(-90.0, *schema.Properties["latitude"].Minimum)
		assert.Equal(90.0, *schema.Properties["latitude"].Maximum)
		assert.Equal(-180.0, *schema.Properties["longitude"].Minimum)
		assert.Equal(180.0, *schema.Properties["longitude"].Maximum)
	}
}

func Test_Tool_002(t *testing.T) {
	assert := assert.New(t)
	tool, source := newTestTool(t)

	result, err := tool.Run(context.Background(), json.RawMessage(`{"latitude":47.6062,"longitude":-122.3321}`))
	assert.NoError(err)
	if assert.IsType("", result) {
		assert.True(strings.HasPrefix(result.(string), "Coordinates 47.6°N -122.33°E\n"))
	}
	assert.Equal(int32(1), source.calls.Load())
}

func Test_Tool_003(t *testing.T) {
	assert := assert.New(t)
	tool, source := newTestTool(t)

	_, err := tool.Run(context.Background(), nil)
	assert.True(errors.Is(err, weather.ErrBadParameter))

	_, err = tool.Run(context.Background(), json.RawMessage(`{"latitude":"north"}`))
	assert.True(errors.Is(err, weather.ErrBadParameter))

	_, err = tool.Run(context.Background(), json.RawMessage(`{"latitude":95,"longitude":0}`))
	assert.True(errors.Is(err, weather.ErrInvalidCoordinates))

	assert.Equal(int32(0), source.calls.Load())
}

func Test_Tool_004(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	forecastTool, source := newTestTool(t)
	toolkit, err := tool.NewToolkit(forecastTool)
	require.NoError(err)

	// Out of range coordinates are invalid coordinates through the toolkit
	for _, input := range []string{`{"latitude":91,"longitude":0}`, `{"latitude":0,"longitude":-180.5}`} {
		_, err := toolkit.Run(context.Background(), "weather_forecast", json.RawMessage(input))
		assert.True(errors.Is(err, weather.ErrInvalidCoordinates), input)
		assert.False(errors.Is(err, weather.ErrBadParameter), input)
	}

	// Missing or mistyped fields are still rejected by the schema
	_, err = toolkit.Run(context.Background(), "weather_forecast", json.RawMessage(`{"latitude":47.6}`))
	assert.True(errors.Is(err, weather.ErrBadParameter))
	_, err = toolkit.Run(context.Background(), "weather_forecast", json.RawMessage(`{"latitude":"north","longitude":0}`))
	assert.True(errors.Is(err, weather.ErrBadParameter))
	assert.Equal(int32(0), source.calls.Load())

	// Valid coordinates reach the upstream
	_, err = toolkit.Run(context.Background(), "weather_forecast", json.RawMessage(`{"latitude":47.6062,"longitude":-122.3321}`))
	assert.NoError(err)
	assert.Equal(int32(1), source.calls.Load())
}
