package table_test

import (
	"math"
	"strings"
	"testing"
	"time"

	// Packages
	table "github.com/mutablelogic/go-weather/pkg/ui/table"
	"github.com/stretchr/testify/assert"
)

type testData struct {
	rows [][]any
}

func (d testData) Header() []string { return []string{"date", "rain", "sunrise"} }
func (d testData) Len() int         { return len(d.rows) }
func (d testData) Row(i int) []any  { return d.rows[i] }

func Test_Table_001(t *testing.T) {
	assert := assert.New(t)
	ts := time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)
	data := testData{rows: [][]any{
		{ts, 0.0, int64(1780290000)},
		{ts.Add(time.Hour), 1.25, int64(0)},
		nil,
	}}

	// Header and one line per non-nil row, no borders or styling
	out := table.Render(data)
	lines := strings.Split(out, "\n")
	assert.Len(lines, 3)
	assert.Equal([]string{"date", "rain", "sunrise"}, strings.Fields(lines[0]))
	assert.Equal([]string{"2026-06-01", "07:00:00", "UTC", "0", "1780290000"}, strings.Fields(lines[1]))
	assert.Equal([]string{"2026-06-01", "08:00:00", "UTC", "1.25", "0"}, strings.Fields(lines[2]))
	assert.NotContains(out, "\x1b")
	for _, line := range lines {
		assert.Equal(strings.TrimRight(line, " "), line)
	}
}

func Test_Table_002(t *testing.T) {
	assert := assert.New(t)
	data := testData{rows: [][]any{{table.Bold{Value: "x"}, 1.5, int64(2)}}}

	out := table.RenderTerm(data)
	assert.Contains(out, "date")
	assert.Contains(out, "1.5")
	assert.Contains(out, "╭")
}

func Test_FormatCell_001(t *testing.T) {
	tests := []struct {
		in     any
		expect string
	}{
		{nil, "-"},
		{"", "-"},
		{"text", "text"},
		{0.0, "0"},
		{-122.3321, "-122.3321"},
		{math.NaN(), "-"},
		{float32(0.5), "0.5"},
		{int64(0), "0"},
		{int64(-25200), "-25200"},
		{0, "0"},
		{uint(3), "3"},
		{time.Time{}, "-"},
		{time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), "2026-01-02 03:04:05 UTC"},
		{true, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, table.FormatCell(tt.in))
	}
}

func Test_Truncate_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("short", table.Truncate("short", 10))
	assert.Equal("a b", table.Truncate("a\nb", 10))
	assert.Equal("abcd…", table.Truncate("abcdefgh", 5))
	assert.Equal(8, table.Width("ab\nabcdefgh\nabc"))
}

func Test_Truncate_002(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("", table.Truncate("abc", 0))
	assert.Equal("", table.Truncate("abc", -5))
	assert.Equal("…", table.Truncate("abc", 1))
	assert.Equal("abc", table.Truncate("abc", 3))
}

func Test_Table_003(t *testing.T) {
	assert := assert.New(t)
	ts := time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)
	data := testData{rows: [][]any{{table.Bold{Value: ts}, 0.5, int64(3)}}}

	// Plain output drops the bold styling
	lines := strings.Split(table.Render(data), "\n")
	assert.Len(lines, 2)
	assert.Equal([]string{"2026-06-01", "07:00:00", "UTC", "0.5", "3"}, strings.Fields(lines[1]))
	assert.NotContains(lines[1], "\x1b")
}
