package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartform/chartdata"
)

// ============================================================================
// SERIES EXTRACTION TESTS
// ============================================================================
// Tests cover:
//   1. Pivoting — one series per key, stable key order, x normalization
//   2. Zero filling — stacked gaps become explicit zeros
//   3. Totals — per-x stacked totals count observations only
//   4. Sorting — name / sum / final-value modes
//   5. Contribution — per-x share normalization
//   6. Label suppression — percentage threshold, only-total top key
// ============================================================================

func fruitQuery() chartdata.QueryResult {
	return chartdata.QueryResult{
		Data: []chartdata.DataRecord{
			{"ds": "2021-01-01", "apple": 10.0, "banana": 5.0},
			{"ds": "2021-01-02", "apple": 20.0},
			{"ds": "2021-01-03", "apple": 30.0, "banana": 15.0},
		},
		ColTypes: map[string]chartdata.GenericDataType{
			"ds":     chartdata.TypeTemporal,
			"apple":  chartdata.TypeNumeric,
			"banana": chartdata.TypeNumeric,
		},
	}
}

func TestExtractSeries(t *testing.T) {
	ext := extractSeries(fruitQuery(), "ds", false, false)

	require.Len(t, ext.series, 2)
	assert.Equal(t, "apple", ext.series[0].Key)
	assert.Equal(t, "banana", ext.series[1].Key)

	// Temporal x cells normalize to time.Time.
	require.Len(t, ext.xDomain, 3)
	assert.Equal(t, chartdata.ParseTime("2021-01-01"), ext.xDomain[0])

	assert.Len(t, ext.series[0].Points, 3)
	// Without zero filling the banana gap is simply absent.
	assert.Len(t, ext.series[1].Points, 2)
}

func TestExtractSeriesZeroFill(t *testing.T) {
	ext := extractSeries(fruitQuery(), "ds", false, true)

	require.Len(t, ext.series[1].Points, 3)
	gap := ext.series[1].Points[1]
	assert.Equal(t, chartdata.ParseTime("2021-01-02"), gap.X)
	assert.Equal(t, 0.0, gap.Y)

	// Stacked totals hold at every x once gaps are filled.
	assert.Equal(t, 15.0, ext.totals[ext.xDomain[0]])
	assert.Equal(t, 20.0, ext.totals[ext.xDomain[1]])
	assert.Equal(t, 45.0, ext.totals[ext.xDomain[2]])
}

func TestExtractSeriesLabelMapKeys(t *testing.T) {
	q := fruitQuery()
	q.LabelMap = chartdata.LabelMap{"apple": {"apple"}}

	ext := extractSeries(q, "ds", false, false)
	require.Len(t, ext.series, 1, "label map restricts the series keys")
	assert.Equal(t, "apple", ext.series[0].Key)
}

func TestExtractSeriesTotalsSkipForecastColumns(t *testing.T) {
	q := chartdata.QueryResult{
		Data: []chartdata.DataRecord{
			{"ds": "2021-01-01", "sales": 10.0, "sales__yhat": 9.0, "sales__yhat_lower": 4.0, "sales__yhat_upper": 6.0},
		},
		ColTypes: map[string]chartdata.GenericDataType{"ds": chartdata.TypeTemporal},
	}

	ext := extractSeries(q, "ds", false, false)
	require.Len(t, ext.series, 4)
	assert.Equal(t, 10.0, ext.totals[ext.xDomain[0]],
		"trend and bounds stay out of the stacked total")
}

func TestExtractSeriesEmptyQuery(t *testing.T) {
	ext := extractSeries(chartdata.QueryResult{}, "ds", true, false)
	assert.Empty(t, ext.series)
	assert.Empty(t, ext.xDomain)
}

func TestSortExtracted(t *testing.T) {
	build := func() []Series {
		return []Series{
			{Key: "banana", Points: []Point{{X: 0, Y: 5}, {X: 1, Y: 50}}},
			{Key: "apple", Points: []Point{{X: 0, Y: 10}, {X: 1, Y: 20}}},
		}
	}

	t.Run("none keeps order", func(t *testing.T) {
		s := build()
		sortExtracted(s, SortNone, true)
		assert.Equal(t, "banana", s[0].Key)
	})

	t.Run("by name ascending", func(t *testing.T) {
		s := build()
		sortExtracted(s, SortName, true)
		assert.Equal(t, "apple", s[0].Key)
	})

	t.Run("by sum descending", func(t *testing.T) {
		s := build()
		sortExtracted(s, SortSum, false)
		assert.Equal(t, "banana", s[0].Key) // 55 > 30
	})

	t.Run("by final value ascending", func(t *testing.T) {
		s := build()
		sortExtracted(s, SortFinal, true)
		assert.Equal(t, "apple", s[0].Key) // 20 < 50
	})
}

func TestApplyContribution(t *testing.T) {
	ext := extractSeries(fruitQuery(), "ds", false, true)
	applyContribution(&ext)

	assert.InDelta(t, 10.0/15.0, ext.series[0].Points[0].Y, 1e-9)
	assert.InDelta(t, 5.0/15.0, ext.series[1].Points[0].Y, 1e-9)
	// Shares at each x sum to one.
	for i := range ext.xDomain {
		sum := ext.series[0].Points[i].Y + ext.series[1].Points[i].Y
		assert.InDelta(t, 1.0, sum, 1e-9, "x index %d", i)
	}
}

func TestHiddenLabelIndexes(t *testing.T) {
	q := chartdata.QueryResult{
		Data: []chartdata.DataRecord{
			{"ds": "2021-01-01", "apple": 95.0, "banana": 5.0},
			{"ds": "2021-01-02", "apple": 50.0, "banana": 50.0},
		},
		ColTypes: map[string]chartdata.GenericDataType{"ds": chartdata.TypeTemporal},
	}
	ext := extractSeries(q, "ds", false, true)

	hidden := hiddenLabelIndexes(ext, 10)
	assert.True(t, hidden["banana"][0], "5% share falls below the 10% threshold")
	assert.False(t, hidden["banana"][1])
	assert.Empty(t, hidden["apple"])

	assert.Empty(t, hiddenLabelIndexes(ext, 0), "zero threshold disables suppression")
}

func TestTopStackedKey(t *testing.T) {
	series := []Series{
		{Key: "apple"},
		{Key: "banana"},
		{Key: "banana__yhat"},
	}
	assert.Equal(t, "banana", topStackedKey(series),
		"topmost observation, skipping forecast variants")
	assert.Equal(t, "", topStackedKey(nil))
}

func TestXValueNormalization(t *testing.T) {
	ts := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	rec := chartdata.DataRecord{"t": "2021-03-04", "n": 4.5, "s": "west"}

	assert.Equal(t, ts, xValue(rec, "t", true))
	assert.Equal(t, 4.5, xValue(rec, "n", false))
	assert.Equal(t, "west", xValue(rec, "s", false))
	assert.Nil(t, xValue(rec, "missing", false))
}
