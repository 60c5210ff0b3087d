package engine

import (
	"strings"

	"github.com/spektr-org/chartform/chartdata"
	"github.com/spektr-org/chartform/colors"
	"github.com/spektr-org/chartform/echarts"
	"github.com/spektr-org/chartform/format"
	"github.com/spektr-org/chartform/formdata"
)

// ============================================================================
// SERIES STYLER — Extracted series → styled option series
// ============================================================================
// Assigns display names, deterministic colors, stack groups, renderer
// config, and per-series formatters. Color identity strips any
// time-comparison suffix so a series and its historical counterpart
// share a color; forecast variants of one base share the base's color.
// ============================================================================

// Stack groups carry a per-query suffix so the primary and secondary
// stacks never merge even when series names collide across queries.
const (
	stackSuffixPrimary   = "\na"
	stackSuffixSecondary = "\nb"
	obsStackGroup        = "obs"
)

// secondaryDedupSuffix is what the query layer appends to a secondary
// label-map key when it collides with a primary one.
const secondaryDedupSuffix = " (1)"

type styler struct {
	form   formdata.FormData
	scale  *colors.CategoricalScale
	shifts []string

	primaryFormats   *format.Map
	secondaryFormats *format.Map
	primaryMax       *float64
	secondaryMax     *float64

	// display names already claimed by the primary query
	claimed map[string]bool

	formatters *SeriesFormatters
}

func newStyler(form formdata.FormData, scale *colors.CategoricalScale, primary, secondary *format.Map, primaryMax, secondaryMax *float64) *styler {
	return &styler{
		form:             form,
		scale:            scale,
		shifts:           append(append([]string{}, form.QueryA.TimeShifts...), form.QueryB.TimeShifts...),
		primaryFormats:   primary,
		secondaryFormats: secondary,
		primaryMax:       primaryMax,
		secondaryMax:     secondaryMax,
		claimed:          make(map[string]bool),
		formatters: &SeriesFormatters{
			Value: make(map[string]format.ValueFormatter),
			Label: make(map[string]LabelFormatter),
		},
	}
}

// style converts one extracted series into an option series and
// registers its formatters.
func (st *styler) style(s Series, opts formdata.QueryOptions, labelMap chartdata.LabelMap, hidden map[int]bool, topKey string) *echarts.Series {
	ctx := ParseForecastContext(s.Key)
	name := st.displayName(s, ctx, labelMap)

	colorKey := StripTimeShift(ParseForecastContext(stripDedupSuffix(s.Key)).Name, st.shifts)
	color := st.scale.Get(colorKey)

	renderType, smooth, step := renderer(opts.SeriesType)
	out := &echarts.Series{
		ID:         s.Key,
		Name:       name,
		Type:       renderType,
		Data:       pointsToData(s.Points),
		YAxisIndex: opts.YAxisIndex,
		Color:      color,
		Smooth:     smooth,
		Step:       step,
		Symbol:     "circle",
		SymbolSize: opts.MarkerSize,
		ShowSymbol: opts.MarkerEnabled,
	}

	stackSuffix := stackSuffixPrimary
	if s.Secondary {
		stackSuffix = stackSuffixSecondary
	}

	switch ctx.Variant {
	case LowerBound:
		// Transparent carrier the band stacks on.
		out.Type = echarts.SeriesTypeLine
		out.Stack = ctx.Name + stackSuffix
		out.LineStyle = &echarts.LineStyle{Opacity: 0}
		out.AreaStyle = &echarts.AreaStyle{Opacity: 0}
		out.ShowSymbol = false
	case UpperBound:
		out.Type = echarts.SeriesTypeLine
		out.Stack = ctx.Name + stackSuffix
		out.LineStyle = &echarts.LineStyle{Opacity: 0}
		out.AreaStyle = &echarts.AreaStyle{Opacity: 0.2}
		out.ShowSymbol = false
	case Trend:
		out.Type = echarts.SeriesTypeLine
		out.LineStyle = &echarts.LineStyle{Type: "dashed", Width: 1}
		out.ShowSymbol = false
	default:
		if opts.Stack {
			out.Stack = obsStackGroup + stackSuffix
		}
		if opts.Area {
			out.AreaStyle = &echarts.AreaStyle{Opacity: opts.Opacity}
		}
	}

	st.registerFormatters(out, s, ctx, opts, hidden, topKey)
	return out
}

// displayName computes the user-facing series name: the metric and
// dimension combination when grouped, else the raw key; a query-source
// suffix disambiguates when both queries share names.
func (st *styler) displayName(s Series, ctx ForecastContext, labelMap chartdata.LabelMap) string {
	grouped := len(st.form.QueryA.GroupBy) > 0
	if s.Secondary {
		grouped = len(st.form.QueryB.GroupBy) > 0
	}

	name := s.Key
	if grouped {
		if vals := LookupLabel(labelMap, s.Key, s.Secondary); len(vals) > 0 {
			name = strings.Join(vals, ", ")
		}
	}

	if !s.Secondary {
		st.claimed[name] = true
		return name
	}
	if st.claimed[name] {
		return name + " (Query B)"
	}
	return name
}

// registerFormatters resolves the series' value formatter (by axis
// membership) and builds the label-visibility closure.
func (st *styler) registerFormatters(out *echarts.Series, s Series, ctx ForecastContext, opts formdata.QueryOptions, hidden map[int]bool, topKey string) {
	formats := st.primaryFormats
	axisMax := st.primaryMax
	if opts.YAxisIndex == 1 {
		formats = st.secondaryFormats
		axisMax = st.secondaryMax
	}
	metricKey := StripTimeShift(stripDedupSuffix(ctx.Name), st.shifts)
	vf := formats.Get(metricKey)
	st.formatters.Value[out.ID] = vf

	showValue := opts.ShowValue && ctx.Variant == Observation
	if showValue && st.form.OnlyTotal && opts.Stack && s.Key != topKey {
		showValue = false
	}
	if !showValue {
		return
	}

	// Bars hide labels past the axis max so clipped bars don't carry
	// misleading values.
	var overMax *float64
	if out.Type == echarts.SeriesTypeBar {
		overMax = axisMax
	}
	st.formatters.Label[out.ID] = func(idx int, v float64) string {
		if hidden[idx] {
			return ""
		}
		if overMax != nil && v > *overMax {
			return ""
		}
		return vf(v)
	}
	out.Label = &echarts.Label{Show: true, Position: "top", FormatterKey: out.ID}
}

// renderer maps the form's series kind onto an ECharts renderer.
func renderer(kind formdata.SeriesKind) (echarts.SeriesType, bool, string) {
	switch kind {
	case formdata.KindBar:
		return echarts.SeriesTypeBar, false, ""
	case formdata.KindScatter:
		return echarts.SeriesTypeScatter, false, ""
	case formdata.KindSmooth:
		return echarts.SeriesTypeLine, true, ""
	case formdata.KindStep:
		return echarts.SeriesTypeLine, false, "start"
	default:
		return echarts.SeriesTypeLine, false, ""
	}
}

func pointsToData(points []Point) [][]any {
	data := make([][]any, len(points))
	for i, p := range points {
		data[i] = []any{p.X, p.Y}
	}
	return data
}

// StripTimeShift removes a trailing time-comparison suffix
// (", 1 week ago") so a series and its shifted counterpart share an
// identity for color assignment.
func StripTimeShift(name string, shifts []string) string {
	for _, shift := range shifts {
		if shift == "" {
			continue
		}
		if trimmed, ok := strings.CutSuffix(name, ", "+shift); ok {
			return trimmed
		}
	}
	return name
}

// LookupLabel resolves a series key in a label map. Secondary lookups
// retry with the query layer's " (1)" dedup suffix when the exact key
// misses.
func LookupLabel(labelMap chartdata.LabelMap, key string, secondary bool) []string {
	if vals, ok := labelMap[key]; ok {
		return vals
	}
	if secondary {
		if vals, ok := labelMap[key+secondaryDedupSuffix]; ok {
			return vals
		}
		if base, ok := strings.CutSuffix(key, secondaryDedupSuffix); ok {
			if vals, found := labelMap[base]; found {
				return vals
			}
		}
	}
	return nil
}

func stripDedupSuffix(key string) string {
	return strings.TrimSuffix(key, secondaryDedupSuffix)
}
