package annotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartform/chartdata"
)

// ============================================================================
// ANNOTATION LAYER TESTS
// ============================================================================
// Tests cover:
//   1. Variant dispatch — flat Config → typed layer, validation errors
//   2. Formula evaluation — compile, per-x evaluation, x coercion
//   3. Overlay builders — interval mark areas, event mark lines,
//      timeseries splitting by series column
// ============================================================================

func TestConfigVariant(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want Layer
	}{
		{
			name: "formula",
			cfg:  Config{Name: "trend", Type: TypeFormula, Show: true, Value: "x * 2"},
			want: FormulaLayer{Name: "trend", Show: true, Expression: "x * 2"},
		},
		{
			name: "interval",
			cfg:  Config{Name: "holidays", Type: TypeInterval, Show: true, TimeColumn: "start", IntervalEndColumn: "end"},
			want: IntervalLayer{Name: "holidays", Show: true, TimeColumn: "start", IntervalEndColumn: "end"},
		},
		{
			name: "event",
			cfg:  Config{Name: "releases", Type: TypeEvent, Show: true, TimeColumn: "ds"},
			want: EventLayer{Name: "releases", Show: true, TimeColumn: "ds"},
		},
		{
			name: "timeseries",
			cfg:  Config{Name: "baseline", Type: TypeTimeseries, Show: true, TimeColumn: "ds", ValueColumn: "v"},
			want: TimeseriesLayer{Name: "baseline", Show: true, TimeColumn: "ds", ValueColumn: "v"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.cfg.Variant()
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.cfg.Name, got.LayerName())
			assert.True(t, got.Visible())
		})
	}
}

func TestConfigVariantValidation(t *testing.T) {
	_, err := Config{Name: "f", Type: TypeFormula}.Variant()
	assert.Error(t, err, "formula without an expression")

	_, err = Config{Name: "i", Type: TypeInterval, TimeColumn: "start"}.Variant()
	assert.Error(t, err, "interval without an end column")

	_, err = Config{Name: "x", Type: LayerType("GRADIENT")}.Variant()
	assert.Error(t, err, "unknown layer type")
}

func TestFormulaEval(t *testing.T) {
	f, err := CompileFormula("x * 2 + 1")
	require.NoError(t, err)

	got, err := f.Eval(3)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)

	_, err = CompileFormula("x +* 2")
	assert.Error(t, err)
}

func TestNumericX(t *testing.T) {
	ts := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, float64(ts.UnixMilli()), NumericX(ts, 0))
	assert.Equal(t, 4.5, NumericX(4.5, 0))
	assert.Equal(t, 7.0, NumericX(int(7), 0))
	// Category values fall back to the ordinal position.
	assert.Equal(t, 3.0, NumericX("west", 3))
}

func TestBuildFormula(t *testing.T) {
	l := FormulaLayer{Name: "doubler", Show: true, Expression: "x * 2"}
	s, err := BuildFormula(l, []any{0.0, 1.0, 2.0})
	require.NoError(t, err)

	assert.Equal(t, "doubler", s.Name)
	require.Len(t, s.Data, 3)
	assert.Equal(t, []any{1.0, 2.0}, s.Data[1])
	assert.Equal(t, []any{2.0, 4.0}, s.Data[2])

	_, err = BuildFormula(FormulaLayer{Name: "bad", Expression: "x +* 1"}, []any{0.0})
	assert.Error(t, err)
}

func TestBuildInterval(t *testing.T) {
	l := IntervalLayer{
		Name:              "holidays",
		Show:              true,
		TimeColumn:        "start",
		IntervalEndColumn: "end",
		TitleColumn:       "title",
		Data: []chartdata.DataRecord{
			{"start": "2021-01-01", "end": "2021-01-05", "title": "New Year"},
			{"start": "2021-07-04"}, // no end, skipped
		},
	}

	s := BuildInterval(l)
	require.NotNil(t, s.MarkArea)
	require.Len(t, s.MarkArea.Data, 1)
	assert.Equal(t, "New Year", s.MarkArea.Data[0][0].Name)
	assert.Equal(t, chartdata.ParseTime("2021-01-01"), s.MarkArea.Data[0][0].XAxis)
	assert.Equal(t, chartdata.ParseTime("2021-01-05"), s.MarkArea.Data[0][1].XAxis)
	assert.Equal(t, defaultLayerOpacity, s.MarkArea.ItemStyle.Opacity)
	assert.Empty(t, s.Data, "carrier series plots no points")
}

func TestBuildEvent(t *testing.T) {
	l := EventLayer{
		Name:       "releases",
		Show:       true,
		TimeColumn: "ds",
		TitleColumn: "tag",
		Data: []chartdata.DataRecord{
			{"ds": "2021-02-01", "tag": "v1.0"},
			{"ds": "2021-04-01", "tag": "v1.1"},
		},
	}

	s := BuildEvent(l)
	require.NotNil(t, s.MarkLine)
	require.Len(t, s.MarkLine.Data, 2)
	assert.Equal(t, "v1.0", s.MarkLine.Data[0].Name)
	assert.Equal(t, "none", s.MarkLine.Symbol)
}

func TestBuildTimeseries(t *testing.T) {
	l := TimeseriesLayer{
		Name:         "baseline",
		Show:         true,
		TimeColumn:   "ds",
		ValueColumn:  "v",
		SeriesColumn: "grp",
		Data: []chartdata.DataRecord{
			{"ds": "2021-01-01", "v": 1.0, "grp": "a"},
			{"ds": "2021-01-02", "v": 2.0, "grp": "a"},
			{"ds": "2021-01-01", "v": 3.0, "grp": "b"},
		},
	}

	series := BuildTimeseries(l)
	require.Len(t, series, 2)
	assert.Equal(t, "baseline, a", series[0].Name)
	assert.Equal(t, "baseline, b", series[1].Name)
	assert.Len(t, series[0].Data, 2)
	assert.Len(t, series[1].Data, 1)
}

func TestBuildTimeseriesHideLine(t *testing.T) {
	l := TimeseriesLayer{
		Name:        "markers-only",
		Show:        true,
		TimeColumn:  "ds",
		ValueColumn: "v",
		ShowMarkers: true,
		MarkerSize:  8,
		HideLine:    true,
		Data: []chartdata.DataRecord{
			{"ds": "2021-01-01", "v": 1.0},
		},
	}

	series := BuildTimeseries(l)
	require.Len(t, series, 1)
	assert.Equal(t, "markers-only", series[0].Name)
	assert.Equal(t, 0.0, series[0].LineStyle.Width)
	assert.Equal(t, "circle", series[0].Symbol)
	assert.True(t, series[0].ShowSymbol)
}
