package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartform/chartdata"
	"github.com/spektr-org/chartform/colors"
	"github.com/spektr-org/chartform/echarts"
	"github.com/spektr-org/chartform/format"
	"github.com/spektr-org/chartform/formdata"
)

// ============================================================================
// SERIES STYLER TESTS
// ============================================================================
// Tests cover:
//   1. Display names — grouped label joins, secondary disambiguation
//   2. Color identity — time-shift stripping, forecast base sharing
//   3. Stack groups — per-query suffixes, forecast band stacks
//   4. Forecast styling — transparent lower, banded upper, dashed trend
//   5. Value labels — only-total gating, bar over-max suppression
// ============================================================================

func testStyler(form formdata.FormData) *styler {
	return newStyler(form, colors.NewScale("default"),
		format.NewMap(nil), format.NewMap(nil), nil, nil)
}

func point(y float64) []Point {
	return []Point{{X: "a", Y: y}}
}

func TestStyleObservation(t *testing.T) {
	form := formdata.Defaults()
	form.QueryA.Stack = true
	form.QueryA.Area = true
	form.QueryA.Opacity = 0.5
	st := testStyler(form)

	out := st.style(Series{Key: "apple", Points: point(10)}, form.QueryA, nil, nil, "")

	assert.Equal(t, "apple", out.ID)
	assert.Equal(t, "apple", out.Name)
	assert.Equal(t, echarts.SeriesTypeLine, out.Type)
	assert.Equal(t, "obs\na", out.Stack)
	require.NotNil(t, out.AreaStyle)
	assert.Equal(t, 0.5, out.AreaStyle.Opacity)
	assert.NotEmpty(t, out.Color)
}

func TestStyleStackSuffixesKeepQueriesApart(t *testing.T) {
	form := formdata.Defaults()
	form.QueryA.Stack = true
	form.QueryB.Stack = true
	st := testStyler(form)

	a := st.style(Series{Key: "sales", Points: point(1)}, form.QueryA, nil, nil, "")
	b := st.style(Series{Key: "sales", Points: point(2), Secondary: true}, form.QueryB, nil, nil, "")

	assert.Equal(t, "obs\na", a.Stack)
	assert.Equal(t, "obs\nb", b.Stack)
	assert.NotEqual(t, a.Stack, b.Stack)
}

func TestStyleForecastVariants(t *testing.T) {
	form := formdata.Defaults()
	st := testStyler(form)

	base := st.style(Series{Key: "sales", Points: point(10)}, form.QueryA, nil, nil, "")
	lower := st.style(Series{Key: "sales__yhat_lower", Points: point(4)}, form.QueryA, nil, nil, "")
	upper := st.style(Series{Key: "sales__yhat_upper", Points: point(6)}, form.QueryA, nil, nil, "")
	trend := st.style(Series{Key: "sales__yhat", Points: point(9)}, form.QueryA, nil, nil, "")

	// Band stacks on the transparent lower carrier.
	assert.Equal(t, "sales\na", lower.Stack)
	assert.Equal(t, "sales\na", upper.Stack)
	assert.Equal(t, 0.0, lower.AreaStyle.Opacity)
	assert.Equal(t, 0.2, upper.AreaStyle.Opacity)
	assert.Equal(t, 0.0, lower.LineStyle.Opacity)

	assert.Equal(t, "dashed", trend.LineStyle.Type)
	assert.Empty(t, trend.Stack)

	// All variants of one base share the base's color.
	assert.Equal(t, base.Color, lower.Color)
	assert.Equal(t, base.Color, upper.Color)
	assert.Equal(t, base.Color, trend.Color)
}

func TestStyleTimeShiftSharesColor(t *testing.T) {
	form := formdata.Defaults()
	form.QueryA.TimeShifts = []string{"1 week ago"}
	st := testStyler(form)

	now := st.style(Series{Key: "apple", Points: point(1)}, form.QueryA, nil, nil, "")
	shifted := st.style(Series{Key: "apple, 1 week ago", Points: point(2)}, form.QueryA, nil, nil, "")
	other := st.style(Series{Key: "banana", Points: point(3)}, form.QueryA, nil, nil, "")

	assert.Equal(t, now.Color, shifted.Color)
	assert.NotEqual(t, now.Color, other.Color)
}

func TestDisplayNameGroupedAndSecondary(t *testing.T) {
	form := formdata.Defaults()
	form.QueryA.GroupBy = []string{"fruit"}
	form.QueryB.GroupBy = []string{"fruit"}
	st := testStyler(form)

	labelMapA := chartdata.LabelMap{"k1": {"sum_sales", "apple"}}
	a := st.style(Series{Key: "k1", Points: point(1)}, form.QueryA, labelMapA, nil, "")
	assert.Equal(t, "sum_sales, apple", a.Name)

	// The secondary query resolves through the " (1)" dedup suffix and
	// picks up a source tag when the display name collides.
	labelMapB := chartdata.LabelMap{"k1 (1)": {"sum_sales", "apple"}}
	b := st.style(Series{Key: "k1", Points: point(2), Secondary: true}, form.QueryB, labelMapB, nil, "")
	assert.Equal(t, "sum_sales, apple (Query B)", b.Name)
}

func TestStyleRenderers(t *testing.T) {
	form := formdata.Defaults()

	cases := []struct {
		kind   formdata.SeriesKind
		typ    echarts.SeriesType
		smooth bool
		step   string
	}{
		{formdata.KindLine, echarts.SeriesTypeLine, false, ""},
		{formdata.KindSmooth, echarts.SeriesTypeLine, true, ""},
		{formdata.KindStep, echarts.SeriesTypeLine, false, "start"},
		{formdata.KindBar, echarts.SeriesTypeBar, false, ""},
		{formdata.KindScatter, echarts.SeriesTypeScatter, false, ""},
	}
	for _, c := range cases {
		st := testStyler(form)
		opts := form.QueryA
		opts.SeriesType = c.kind
		out := st.style(Series{Key: "m", Points: point(1)}, opts, nil, nil, "")
		assert.Equal(t, c.typ, out.Type, "kind %s", c.kind)
		assert.Equal(t, c.smooth, out.Smooth, "kind %s", c.kind)
		assert.Equal(t, c.step, out.Step, "kind %s", c.kind)
	}
}

func TestRegisterFormattersLabelGating(t *testing.T) {
	form := formdata.Defaults()
	form.QueryA.ShowValue = true
	form.QueryA.Stack = true
	form.OnlyTotal = true
	st := testStyler(form)

	bottom := st.style(Series{Key: "apple", Points: point(1)}, form.QueryA, nil, nil, "banana")
	top := st.style(Series{Key: "banana", Points: point(2)}, form.QueryA, nil, nil, "banana")

	assert.Nil(t, bottom.Label, "only the topmost stacked series keeps labels")
	require.NotNil(t, top.Label)
	assert.True(t, top.Label.Show)
	assert.Equal(t, "banana", top.Label.FormatterKey)
	assert.NotNil(t, st.formatters.Label["banana"])
	assert.Nil(t, st.formatters.Label["apple"])
}

func TestRegisterFormattersHiddenAndOverMax(t *testing.T) {
	form := formdata.Defaults()
	form.QueryA.ShowValue = true
	form.QueryA.SeriesType = formdata.KindBar

	max := 100.0
	st := newStyler(form, colors.NewScale("default"),
		format.NewMap(nil), format.NewMap(nil), &max, nil)

	out := st.style(Series{Key: "sales", Points: point(1)}, form.QueryA,
		nil, map[int]bool{1: true}, "")
	require.NotNil(t, out.Label)

	lf := st.formatters.Label[out.ID]
	require.NotNil(t, lf)
	assert.Equal(t, "50", lf(0, 50))
	assert.Equal(t, "", lf(1, 50), "threshold-hidden index")
	assert.Equal(t, "", lf(0, 150), "bar clipped past the axis max")
}

func TestStripTimeShift(t *testing.T) {
	shifts := []string{"1 week ago", "1 year ago"}
	assert.Equal(t, "apple", StripTimeShift("apple, 1 week ago", shifts))
	assert.Equal(t, "apple", StripTimeShift("apple, 1 year ago", shifts))
	assert.Equal(t, "apple", StripTimeShift("apple", shifts))
	assert.Equal(t, "apple, tomorrow", StripTimeShift("apple, tomorrow", shifts))
}

func TestLookupLabel(t *testing.T) {
	lm := chartdata.LabelMap{
		"apple":      {"apple"},
		"banana (1)": {"banana"},
	}

	assert.Equal(t, []string{"apple"}, LookupLabel(lm, "apple", false))
	assert.Nil(t, LookupLabel(lm, "banana", false))
	assert.Equal(t, []string{"banana"}, LookupLabel(lm, "banana", true),
		"secondary retries with the dedup suffix")
	assert.Equal(t, []string{"apple"}, LookupLabel(lm, "apple (1)", true),
		"and strips it when the suffixed key misses")
	assert.Nil(t, LookupLabel(lm, "cherry", true))
}
