package openmeteo

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	// Packages
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ForecastRequest defines the query for a single location forecast
type ForecastRequest struct {
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	Current      VariableSet `json:"-"`
	Hourly       VariableSet `json:"-"`
	Daily        VariableSet `json:"-"`
	Timezone     string      `json:"timezone,omitempty"`
	ForecastDays uint        `json:"forecast_days,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	MaxForecastDays = 16
)

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Validate checks the coordinates and the forecast horizon
func (r *ForecastRequest) Validate() error {
	if math.IsNaN(r.Latitude) || r.Latitude < -90 || r.Latitude > 90 {
		return weather.ErrInvalidCoordinates.Withf("latitude %v out of range [-90, 90]", r.Latitude)
	}
	if math.IsNaN(r.Longitude) || r.Longitude < -180 || r.Longitude > 180 {
		return weather.ErrInvalidCoordinates.Withf("longitude %v out of range [-180, 180]", r.Longitude)
	}
	if r.ForecastDays > MaxForecastDays {
		return weather.ErrBadParameter.Withf("forecast_days must be between 1 and %d", MaxForecastDays)
	}
	return nil
}

// Values converts ForecastRequest to URL query parameters. Variable names
// are comma-joined in declared order.
func (r *ForecastRequest) Values() url.Values {
	result := url.Values{}
	result.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	result.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	if len(r.Current) > 0 {
		result.Set(string(Current), r.Current.String())
	}
	if len(r.Hourly) > 0 {
		result.Set(string(Hourly), r.Hourly.String())
	}
	if len(r.Daily) > 0 {
		result.Set(string(Daily), r.Daily.String())
	}
	if r.Timezone != "" {
		result.Set("timezone", r.Timezone)
	}
	if r.ForecastDays > 0 {
		result.Set("forecast_days", fmt.Sprint(r.ForecastDays))
	}
	result.Set("timeformat", "unixtime")
	return result
}

// Key returns the request signature used for caching
func (r *ForecastRequest) Key() string {
	return r.Values().Encode()
}
