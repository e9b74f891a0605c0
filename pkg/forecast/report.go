package forecast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	// Packages
	openmeteo "github.com/mutablelogic/go-weather/pkg/openmeteo"
	table "github.com/mutablelogic/go-weather/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Report is the decoded forecast for one location
type Report struct {
	Latitude             float64
	Longitude            float64
	Elevation            float64
	Timezone             string
	TimezoneAbbreviation string
	UtcOffsetSeconds     int64
	Current              *Current
	Hourly               *Table
	Daily                *Table
}

// Current holds a single snapshot, one value per current variable
type Current struct {
	Time   time.Time
	Values []Value
}

// Value is a named scalar
type Value struct {
	Name  string
	Value float64
}

// Table is a time series with one column per variable. Rows are indexed
// by the time axis.
type Table struct {
	Time    []time.Time
	Columns []Column
}

// Column holds the values of one variable. Exactly one of Values and
// ValuesInt64 is set, depending on Kind.
type Column struct {
	Name        string
	Kind        openmeteo.Kind
	Values      []float64
	ValuesInt64 []int64
}

var _ table.TableData = (*Table)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Header returns the column labels, starting with the date
func (t *Table) Header() []string {
	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "date")
	for _, column := range t.Columns {
		header = append(header, column.Name)
	}
	return header
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Time)
}

// Row returns the timestamp, in bold, and the value of each column for row i
func (t *Table) Row(i int) []any {
	if i < 0 || i >= len(t.Time) {
		return nil
	}
	row := make([]any, 0, len(t.Columns)+1)
	row = append(row, table.Bold{Value: t.Time[i]})
	for _, column := range t.Columns {
		if column.Kind == openmeteo.Int64 {
			row = append(row, column.ValuesInt64[i])
		} else {
			row = append(row, column.Values[i])
		}
	}
	return row
}

// Column returns the column with the given name, or nil
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

// String renders the report as header lines, one line per current value
// and then the hourly and daily tables
func (r *Report) String() string {
	var buf strings.Builder
	buf.WriteString(r.Summary())
	if r.Hourly != nil {
		buf.WriteString(table.Render(r.Hourly))
		buf.WriteString("\n")
	}
	if r.Daily != nil {
		buf.WriteString(table.Render(r.Daily))
		buf.WriteString("\n")
	}
	return buf.String()
}

// Summary renders the header lines and the current values, without the tables
func (r *Report) Summary() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Coordinates %s°N %s°E\n", formatFloat(r.Latitude), formatFloat(r.Longitude))
	fmt.Fprintf(&buf, "Elevation %s m asl\n", formatFloat(r.Elevation))
	fmt.Fprintf(&buf, "Timezone %s %s\n", r.Timezone, r.TimezoneAbbreviation)
	fmt.Fprintf(&buf, "Timezone difference to GMT+0 %d s\n", r.UtcOffsetSeconds)
	if r.Current != nil {
		fmt.Fprintf(&buf, "Current time %d\n", r.Current.Time.Unix())
		for _, value := range r.Current.Values {
			fmt.Fprintf(&buf, "Current %s %s\n", value.Name, formatFloat(value.Value))
		}
	}
	return buf.String()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
