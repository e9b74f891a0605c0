package openmeteo

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResponse = `{
	"latitude": 47.6,
	"longitude": -122.33,
	"generationtime_ms": 0.5,
	"utc_offset_seconds": -25200,
	"timezone": "America/Los_Angeles",
	"timezone_abbreviation": "PDT",
	"elevation": 56.0,
	"current": {"time": 1718000000, "interval": 900, "temperature_2m": 14.5, "is_day": 1, "rain": null},
	"hourly": {"time": [1718000000, 1718003600, 1718007200], "weather_code": [3, 2, 1], "temperature_2m": [14.5, null, 13.25]},
	"daily": {"time": [1717974000, 1718060400], "sunrise": [1717993000, 1718079400], "uv_index_max": [5.5, 6]}
}`

func Test_Response_001(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var response Response
	require.NoError(json.Unmarshal([]byte(testResponse), &response))

	assert.Equal(47.6, response.Latitude)
	assert.Equal(-122.33, response.Longitude)
	assert.Equal(56.0, response.Elevation)
	assert.Equal(int64(-25200), response.UtcOffsetSeconds)
	assert.Equal("America/Los_Angeles", response.Timezone)
	assert.Equal("PDT", response.TimezoneAbbreviation)
}

func Test_Response_002(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var response Response
	require.NoError(json.Unmarshal([]byte(testResponse), &response))
	require.NotNil(response.Current)

	// Current values are scalars in wire order
	current := response.Current
	assert.Equal(int64(1718000000), current.Time)
	assert.Equal(int64(900), current.Interval)
	assert.Equal(3, current.Len())

	names := []string{"temperature_2m", "is_day", "rain"}
	for i, name := range names {
		v, err := current.Variables(i)
		require.NoError(err)
		assert.Equal(name, v.Name)
	}
	v, _ := current.Variables(0)
	assert.Equal(14.5, v.Value)
	v, _ = current.Variables(2)
	assert.True(math.IsNaN(v.Value))

	// Out of range is a malformed response
	_, err := current.Variables(3)
	assert.True(errors.Is(err, weather.ErrMalformedResponse))
}

func Test_Response_003(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var response Response
	require.NoError(json.Unmarshal([]byte(testResponse), &response))
	require.NotNil(response.Hourly)

	hourly := response.Hourly
	assert.Equal(int64(1718000000), hourly.Time)
	assert.Equal(int64(3600), hourly.Interval)
	assert.Equal(int64(1718000000+3*3600), hourly.TimeEnd)
	assert.Equal(3, hourly.Steps())

	times := hourly.Times()
	require.Len(times, 3)
	assert.Equal(time.Unix(1718000000, 0).UTC(), times[0])
	assert.Equal(time.Unix(1718007200, 0).UTC(), times[2])

	// Wire order, not alphabetical
	first, err := hourly.Variables(0)
	require.NoError(err)
	assert.Equal("weather_code", first.Name)
	assert.Equal([]float64{3, 2, 1}, first.Values)

	second, err := hourly.Variables(1)
	require.NoError(err)
	assert.Equal("temperature_2m", second.Name)
	assert.Equal(14.5, second.Values[0])
	assert.True(math.IsNaN(second.Values[1]))
	assert.Equal(13.25, second.Values[2])
}

func Test_Response_004(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var response Response
	require.NoError(json.Unmarshal([]byte(testResponse), &response))
	require.NotNil(response.Daily)

	daily := response.Daily
	assert.Equal(int64(86400), daily.Interval)
	assert.Equal(2, daily.Steps())

	sunrise, err := daily.Variables(0)
	require.NoError(err)
	assert.Equal("sunrise", sunrise.Name)
	assert.Equal([]int64{1717993000, 1718079400}, sunrise.ValuesInt64)

	uv, err := daily.Variables(1)
	require.NoError(err)
	assert.Equal([]float64{5.5, 6}, uv.Values)
}

func Test_Response_005(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// A single daily timestamp falls back to the nominal interval
	var response Response
	require.NoError(json.Unmarshal([]byte(`{"daily":{"time":[1717974000],"rain_sum":[0]}}`), &response))
	assert.Equal(int64(86400), response.Daily.Interval)
	assert.Equal(1, response.Daily.Steps())
	assert.Nil(response.Hourly)
	assert.Nil(response.Current)
}

func Test_Response_006(t *testing.T) {
	assert := assert.New(t)

	// Sections must be objects
	var response Response
	assert.Error(json.Unmarshal([]byte(`{"hourly":[1,2,3]}`), &response))
	assert.Error(json.Unmarshal([]byte(`{"hourly":{"rain":"wet"}}`), &response))
}

func Test_Response_007(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// Local midnights in Los Angeles across the end of daylight saving time,
	// where the first day is 25 hours long
	var response Response
	require.NoError(json.Unmarshal([]byte(`{
		"timezone": "America/Los_Angeles",
		"daily": {"time": [1730617200, 1730707200, 1730793600], "temperature_2m_max": [15, 16, 17]}
	}`), &response))
	require.NotNil(response.Daily)

	daily := response.Daily
	assert.Equal(int64(86400), daily.Interval)
	assert.Equal(3, daily.Steps())

	times := daily.Times()
	require.Len(times, 3)
	assert.Equal(time.Unix(1730617200, 0).UTC(), times[0])
	assert.Equal(time.Unix(1730707200, 0).UTC(), times[1])
	assert.Equal(time.Unix(1730793600, 0).UTC(), times[2])
}

func Test_Response_008(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var response Response
	require.NoError(json.Unmarshal([]byte(testResponse), &response))
	assert.True(response.Current.IsScalar())
	assert.False(response.Hourly.IsScalar())
	assert.False(response.Daily.IsScalar())

	// A current section without a timestamp is not scalar
	require.NoError(json.Unmarshal([]byte(`{"current":{"temperature_2m":14.5}}`), &response))
	require.NotNil(response.Current)
	assert.False(response.Current.IsScalar())
	assert.Equal(int64(0), response.Current.Time)
}
