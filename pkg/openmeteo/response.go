package openmeteo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	// Packages
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Response is a single location forecast. Variables within each section are
// kept in the order the upstream API returned them and are accessed by
// position.
type Response struct {
	Latitude             float64  `json:"latitude"`
	Longitude            float64  `json:"longitude"`
	Elevation            float64  `json:"elevation"`
	GenerationTimeMs     float64  `json:"generationtime_ms"`
	UtcOffsetSeconds     int64    `json:"utc_offset_seconds"`
	Timezone             string   `json:"timezone"`
	TimezoneAbbreviation string   `json:"timezone_abbreviation"`
	Current              *Section `json:"current,omitempty"`
	Hourly               *Section `json:"hourly,omitempty"`
	Daily                *Section `json:"daily,omitempty"`
}

// Section holds the variables for one cadence. For the current cadence
// there is a single timestamp and each series has a scalar value; otherwise
// the time axis runs from Time (inclusive) to TimeEnd (exclusive) in steps
// of Interval seconds. Daily sections use a nominal interval of one day,
// and Times returns the timestamps as sent, which follow local midnight.
type Section struct {
	Time     int64
	TimeEnd  int64
	Interval int64
	times    []int64
	series   []*Series
	scalar   bool
}

// Series is one variable within a section
type Series struct {
	Name        string
	Value       float64
	Values      []float64
	ValuesInt64 []int64
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	hourlyInterval = int64(time.Hour / time.Second)
	dailyInterval  = int64(24 * time.Hour / time.Second)
)

///////////////////////////////////////////////////////////////////////////////
// UNMARSHAL

func (r *Response) UnmarshalJSON(data []byte) error {
	type response Response
	var v response
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Hourly != nil {
		v.Hourly.normalise(hourlyInterval, false)
	}
	if v.Daily != nil {
		v.Daily.normalise(dailyInterval, true)
	}
	*r = Response(v)
	return nil
}

// UnmarshalJSON reads the section object token by token so the order of
// the variables is preserved
func (s *Section) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	// Expect an object
	if tok, err := dec.Token(); err != nil {
		return err
	} else if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	var times []int64
	*s = Section{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "time":
			if isArray(raw) {
				if times, err = decodeInt64Array(raw); err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
			} else if s.Time, err = decodeInt64(raw); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			} else {
				s.scalar = true
			}
		case "interval":
			if s.Interval, err = decodeInt64(raw); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		default:
			series, err := decodeSeries(key, raw)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			s.series = append(s.series, series)
		}
	}

	// Consume the closing delimiter
	if _, err := dec.Token(); err != nil {
		return err
	}

	// Derive the time axis from the time array
	if !s.scalar && len(times) > 0 {
		s.Time = times[0]
		s.times = times
		if len(times) > 1 {
			s.Interval = times[1] - times[0]
		}
		if s.Interval > 0 {
			s.TimeEnd = s.Time + int64(len(times))*s.Interval
		}
	}

	// Return success
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Len returns the number of variables in the section
func (s *Section) Len() int {
	return len(s.series)
}

// Variables returns the series at position i
func (s *Section) Variables(i int) (*Series, error) {
	if i < 0 || i >= len(s.series) {
		return nil, weather.ErrMalformedResponse.Withf("variable index %d out of range (%d variables)", i, len(s.series))
	}
	return s.series[i], nil
}

// Steps returns the number of timestamps in [Time, TimeEnd)
func (s *Section) Steps() int {
	if s.Interval <= 0 || s.TimeEnd <= s.Time {
		return 0
	}
	return int((s.TimeEnd - s.Time) / s.Interval)
}

// IsScalar returns true if the section carried a single timestamp
func (s *Section) IsScalar() bool {
	return s.scalar
}

// Times returns the time axis in UTC. The upstream timestamps are used when
// present, otherwise the axis is reconstructed from Time and Interval.
func (s *Section) Times() []time.Time {
	if len(s.times) > 0 {
		result := make([]time.Time, 0, len(s.times))
		for _, ts := range s.times {
			result = append(result, time.Unix(ts, 0).UTC())
		}
		return result
	}
	n := s.Steps()
	result := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, time.Unix(s.Time+int64(i)*s.Interval, 0).UTC())
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// normalise sets the nominal interval when the response does not carry
// enough timestamps to derive one, or always when fixed is true. Daily
// steps are 23 or 25 hours across a daylight saving change.
func (s *Section) normalise(interval int64, fixed bool) {
	if s.scalar {
		return
	} else if s.Interval <= 0 || fixed {
		s.Interval = interval
	}
	n := len(s.times)
	if n == 0 {
		n = s.rows()
	}
	if n > 0 {
		s.TimeEnd = s.Time + int64(n)*s.Interval
	}
}

// rows returns the longest column length
func (s *Section) rows() int {
	n := 0
	for _, series := range s.series {
		n = max(n, len(series.Values))
	}
	return n
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func decodeSeries(name string, raw json.RawMessage) (*Series, error) {
	series := &Series{Name: name}
	if !isArray(raw) {
		var n *json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		series.Value = numberToFloat(n)
		return series, nil
	}
	var values []*json.Number
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	series.Values = make([]float64, len(values))
	series.ValuesInt64 = make([]int64, len(values))
	for i, n := range values {
		series.Values[i] = numberToFloat(n)
		series.ValuesInt64[i] = numberToInt64(n)
	}
	return series, nil
}

func decodeInt64(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return numberToInt64(&n), nil
}

func decodeInt64Array(raw json.RawMessage) ([]int64, error) {
	var values []json.Number
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	result := make([]int64, len(values))
	for i := range values {
		result[i] = numberToInt64(&values[i])
	}
	return result, nil
}

// numberToFloat returns NaN for null values
func numberToFloat(n *json.Number) float64 {
	if n == nil {
		return math.NaN()
	}
	if v, err := n.Float64(); err == nil {
		return v
	}
	return math.NaN()
}

// numberToInt64 returns zero for null values
func numberToInt64(n *json.Number) int64 {
	if n == nil {
		return 0
	}
	if v, err := n.Int64(); err == nil {
		return v
	}
	if v, err := n.Float64(); err == nil && !math.IsNaN(v) {
		return int64(v)
	}
	return 0
}
