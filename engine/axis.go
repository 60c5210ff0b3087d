package engine

import (
	"github.com/spektr-org/chartform/chartdata"
	"github.com/spektr-org/chartform/echarts"
	"github.com/spektr-org/chartform/format"
	"github.com/spektr-org/chartform/formdata"
)

// ============================================================================
// AXIS & FORMATTER RESOLUTION
// ============================================================================
// X-axis type: the time type wins only when the column is temporal and
// nothing forces categories — an explicit force-categorical flag or
// row-contribution stacking (which needs aligned category buckets).
//
// Numeric formatter priority per metric:
//   1. forced percentage in contribution mode
//   2. configured currency for the metric
//   3. per-metric custom format override
//   4. the global default format string
// Two independent sets exist for the primary and secondary axis.
// ============================================================================

// resolveXAxisType picks the x axis type. Column metadata comes from
// the primary query; a chart populated only in the secondary slot
// resolves against the secondary query's coltypes instead.
func resolveXAxisType(form formdata.FormData, primary, secondary chartdata.QueryResult) echarts.AxisType {
	forced := form.XAxisForceCategorical || form.ContributionMode == "row"
	q := primary
	if len(q.ColTypes) == 0 {
		q = secondary
	}
	if !forced && q.IsTemporal(form.XAxis) {
		return echarts.AxisTypeTime
	}
	return echarts.AxisTypeCategory
}

// formatterSet builds the per-metric formatter map for one axis.
func formatterSet(contribution bool, currency format.Currency, columnFormats map[string]string, defaultFormat string, metrics []string) *format.Map {
	var fallback format.ValueFormatter
	if contribution {
		fallback = format.Percent(1)
	} else {
		fallback = format.Number(defaultFormat)
	}
	m := format.NewMap(fallback)
	if contribution {
		// Percentage view overrides every per-metric format.
		return m
	}

	for _, metric := range metrics {
		custom, hasCustom := columnFormats[metric]
		switch {
		case currency.IsSet() && hasCustom:
			m.Set(metric, currency.Formatter(format.Number(custom)))
		case currency.IsSet():
			m.Set(metric, currency.Formatter(nil))
		case hasCustom:
			m.Set(metric, format.Number(custom))
		}
	}
	return m
}

// resolveBounds applies the explicit bounds (honored when axis
// truncation is on) and the contribution-mode default of [0, 1].
func resolveBounds(form formdata.FormData, bounds formdata.AxisBounds, stacked bool) (min, max *float64) {
	if form.TruncateYAxis {
		min, max = bounds.Min, bounds.Max
	}
	if form.ContributionMode != "" && stacked {
		zero, one := 0.0, 1.0
		if min == nil {
			min = &zero
		}
		if max == nil {
			max = &one
		}
	}
	return min, max
}

// buildYAxis assembles one y axis spec.
func buildYAxis(name, formatKey string, logScale bool, minorSplit bool, min, max *float64) *echarts.Axis {
	axisType := echarts.AxisTypeValue
	if logScale {
		axisType = echarts.AxisTypeLog
	}
	axis := &echarts.Axis{
		Type: axisType,
		Name: name,
		Min:  min,
		Max:  max,
		AxisLabel: &echarts.AxisLabel{
			Formatter: formatKey,
		},
	}
	if minorSplit {
		axis.MinorTick = &echarts.MinorTick{Show: true}
		axis.SplitLine = &echarts.SplitLine{Show: true}
	}
	return axis
}

// buildXAxis assembles the x axis spec.
func buildXAxis(form formdata.FormData, axisType echarts.AxisType) *echarts.Axis {
	label := &echarts.AxisLabel{HideOverlap: true}
	if axisType == echarts.AxisTypeTime {
		label.Formatter = form.XAxisTimeFormat
	}
	return &echarts.Axis{
		Type:      axisType,
		Name:      form.XAxisTitle,
		AxisLabel: label,
	}
}
