package forecast

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	weather "github.com/mutablelogic/go-weather"
	openmeteo "github.com/mutablelogic/go-weather/pkg/openmeteo"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ForecastToolRequest is the input to the forecast tool. Coordinates out of
// range fail with ErrInvalidCoordinates, other input errors with
// ErrBadParameter.
type ForecastToolRequest struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitude of the location of interest"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude of the location of interest"`
}

type forecastTool struct {
	adapter *Adapter
}

var _ tool.Tool = (*forecastTool)(nil)
var _ tool.Validator = (*forecastTool)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns the forecast as a tool for use with agents
func NewTool(adapter *Adapter) tool.Tool {
	return &forecastTool{adapter: adapter}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (*forecastTool) Name() string {
	return "weather_forecast"
}

func (*forecastTool) Description() string {
	return "Invokes a weather API and returns the current conditions and the hourly and daily forecast for the given location."
}

// Return the JSON schema for the tool input
func (*forecastTool) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ForecastToolRequest](nil)
	if err != nil {
		return nil, err
	}

	// Add range constraints for the coordinates
	setRange(schema, "latitude", -90, 90)
	setRange(schema, "longitude", -180, 180)

	return schema, nil
}

// Validate returns ErrInvalidCoordinates when the coordinates are out of
// range. Input which does not decode is left to the schema.
func (*forecastTool) Validate(input json.RawMessage) error {
	var req ForecastToolRequest
	if len(input) == 0 || json.Unmarshal(input, &req) != nil {
		return nil
	}
	return (&openmeteo.ForecastRequest{Latitude: req.Latitude, Longitude: req.Longitude}).Validate()
}

// Run the tool with the given input
func (f *forecastTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ForecastToolRequest
	if len(input) == 0 {
		return nil, weather.ErrBadParameter.With("latitude and longitude are required")
	}
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, weather.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return f.adapter.Fetch(ctx, req.Latitude, req.Longitude)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setRange(schema *jsonschema.Schema, name string, min, max float64) {
	if field, ok := schema.Properties[name]; ok && field != nil {
		field.Minimum = &min
		field.Maximum = &max
	}
}
