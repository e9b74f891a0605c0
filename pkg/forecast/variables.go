package forecast

import (
	// Packages
	openmeteo "github.com/mutablelogic/go-weather/pkg/openmeteo"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// The variables requested for each cadence. The same sets build the request
// and decode the response, so the order here is the order of the report.
var (
	CurrentVariables = openmeteo.NewVariableSet(
		"temperature_2m",
		"relative_humidity_2m",
		"is_day",
		"apparent_temperature",
		"precipitation",
		"rain",
		"showers",
		"snowfall",
		"weather_code",
		"cloud_cover",
		"pressure_msl",
		"surface_pressure",
		"wind_speed_10m",
		"wind_direction_10m",
		"wind_gusts_10m",
	)

	HourlyVariables = openmeteo.NewVariableSet(
		"temperature_2m",
		"weather_code",
		"relative_humidity_2m",
		"dew_point_2m",
		"apparent_temperature",
		"precipitation_probability",
		"rain",
		"precipitation",
		"showers",
		"snowfall",
		"surface_pressure",
		"pressure_msl",
		"visibility",
		"temperature_80m",
		"temperature_120m",
		"temperature_180m",
		"snow_depth",
	)

	DailyVariables = openmeteo.NewVariableSet(
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"apparent_temperature_max",
		"apparent_temperature_min",
		"sunrise",
		"sunset",
		"daylight_duration",
		"sunshine_duration",
		"uv_index_max",
		"uv_index_clear_sky_max",
		"rain_sum",
		"showers_sum",
		"snowfall_sum",
		"precipitation_sum",
		"precipitation_hours",
		"precipitation_probability_max",
		"wind_speed_10m_max",
		"wind_gusts_10m_max",
		"wind_direction_10m_dominant",
		"shortwave_radiation_sum",
		"et0_fao_evapotranspiration",
	).WithInt64("sunrise", "sunset")
)
