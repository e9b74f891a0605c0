package forecast

import (
	"slices"
	"time"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	openmeteo "github.com/mutablelogic/go-weather/pkg/openmeteo"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// decode maps the response onto the report. The variable at position i of
// each section must be the variable at position i of the requested set,
// otherwise the response is malformed. A cadence with an empty set is
// left out of the report. Values are copied, since the response may be
// shared through the cache.
func decode(response *openmeteo.Response, current, hourly, daily openmeteo.VariableSet) (*Report, error) {
	report := &Report{
		Latitude:             response.Latitude,
		Longitude:            response.Longitude,
		Elevation:            response.Elevation,
		Timezone:             response.Timezone,
		TimezoneAbbreviation: response.TimezoneAbbreviation,
		UtcOffsetSeconds:     response.UtcOffsetSeconds,
	}

	if len(current) > 0 {
		if c, err := decodeCurrent(response.Current, current); err != nil {
			return nil, err
		} else {
			report.Current = c
		}
	}
	if len(hourly) > 0 {
		if t, err := decodeTable(openmeteo.Hourly, response.Hourly, hourly); err != nil {
			return nil, err
		} else {
			report.Hourly = t
		}
	}
	if len(daily) > 0 {
		if t, err := decodeTable(openmeteo.Daily, response.Daily, daily); err != nil {
			return nil, err
		} else {
			report.Daily = t
		}
	}

	// Return success
	return report, nil
}

func decodeCurrent(section *openmeteo.Section, set openmeteo.VariableSet) (*Current, error) {
	if err := checkSection(openmeteo.Current, section, set); err != nil {
		return nil, err
	}
	current := &Current{
		Time:   time.Unix(section.Time, 0).UTC(),
		Values: make([]Value, 0, len(set)),
	}
	for i, variable := range set {
		series, err := section.Variables(i)
		if err != nil {
			return nil, err
		}
		current.Values = append(current.Values, Value{Name: variable.Name, Value: series.Value})
	}
	return current, nil
}

func decodeTable(cadence openmeteo.Cadence, section *openmeteo.Section, set openmeteo.VariableSet) (*Table, error) {
	if err := checkSection(cadence, section, set); err != nil {
		return nil, err
	}
	t := &Table{
		Time:    section.Times(),
		Columns: make([]Column, 0, len(set)),
	}
	for i, variable := range set {
		series, err := section.Variables(i)
		if err != nil {
			return nil, err
		}
		if len(series.Values) != len(t.Time) {
			return nil, weather.ErrMalformedResponse.Withf("%s: %q has %d values, expected %d", cadence, variable.Name, len(series.Values), len(t.Time))
		}
		column := Column{Name: variable.Name, Kind: variable.Kind}
		if variable.Kind == openmeteo.Int64 {
			column.ValuesInt64 = slices.Clone(series.ValuesInt64)
		} else {
			column.Values = slices.Clone(series.Values)
		}
		t.Columns = append(t.Columns, column)
	}
	return t, nil
}

// checkSection returns an error if the section is missing, a current
// section has no timestamp, or the variables do not line up with the set
func checkSection(cadence openmeteo.Cadence, section *openmeteo.Section, set openmeteo.VariableSet) error {
	if section == nil {
		return weather.ErrMalformedResponse.Withf("%s: missing section", cadence)
	} else if cadence == openmeteo.Current && !section.IsScalar() {
		return weather.ErrMalformedResponse.Withf("%s: missing time", cadence)
	}
	if section.Len() != len(set) {
		return weather.ErrMalformedResponse.Withf("%s: expected %d variables, got %d", cadence, len(set), section.Len())
	}
	for i, variable := range set {
		series, err := section.Variables(i)
		if err != nil {
			return err
		}
		if series.Name != variable.Name {
			return weather.ErrMalformedResponse.Withf("%s: variable %d is %q, expected %q", cadence, i, series.Name, variable.Name)
		}
	}
	return nil
}
