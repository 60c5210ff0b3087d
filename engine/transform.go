package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spektr-org/chartform/chartdata"
	"github.com/spektr-org/chartform/echarts"
	"github.com/spektr-org/chartform/formdata"
)

// ============================================================================
// TRANSFORM — (queries, form data, render context) → RenderConfig
// ============================================================================
// Pipeline:
//   1. Forecast rebasing per query (alias resolution, band heights)
//   2. Series extraction (pivot, zero-fill, totals, sorting)
//   3. Contribution normalization and label suppression
//   4. Axis and formatter resolution (primary + secondary sets)
//   5. Series styling (names, colors, stacks, renderers)
//   6. Annotation overlay merge
//   7. Dedup, tooltip/legend/zoom assembly, side channels
//
// The transform is pure: no I/O, no shared state beyond the FocusCell.
// ============================================================================

// Transform runs the full chart data transform.
func Transform(queries Queries, form formdata.FormData, renderCtx RenderContext, opts ...Option) (*RenderConfig, error) {
	if form.XAxis == "" {
		return nil, fmt.Errorf("transform: x-axis column not set")
	}
	cfg := applyOptions(form.ColorScheme, opts)

	qA := prepareQuery(queries.A)
	qB := prepareQuery(queries.B)

	// 2. Extraction. Zero-fill only matters when stacking.
	extA := extractSeries(qA, form.XAxis, false, form.QueryA.Stack)
	extB := extractSeries(qB, form.XAxis, true, form.QueryB.Stack)
	sortExtracted(extA.series, form.SortSeriesBy, form.SortSeriesAscending)
	sortExtracted(extB.series, form.SortSeriesBy, form.SortSeriesAscending)

	// 3. Label suppression, then contribution. Threshold shares are
	// measured against the raw stacked totals, so the hidden sets must
	// be computed before normalization rewrites the point values.
	hiddenA := hiddenLabelIndexes(extA, form.PercentageThreshold)
	hiddenB := hiddenLabelIndexes(extB, form.PercentageThreshold)
	contribution := form.ContributionMode != ""
	if contribution {
		applyContribution(&extA)
		applyContribution(&extB)
	}
	topA, topB := "", ""
	if form.OnlyTotal {
		if form.QueryA.Stack {
			topA = topStackedKey(extA.series)
		}
		if form.QueryB.Stack {
			topB = topStackedKey(extB.series)
		}
	}

	// 4. Formatters and bounds.
	primaryMetrics, secondaryMetrics := axisMetrics(form, extA, extB)
	primaryFormats := formatterSet(contribution, form.CurrencyFormat, form.ColumnFormats, form.YAxisFormat, primaryMetrics)
	secondaryFormats := formatterSet(contribution, form.CurrencyFormatSecondary, form.ColumnFormats, form.YAxisFormatSecondary, secondaryMetrics)

	stacked := form.QueryA.Stack || form.QueryB.Stack
	minPrimary, maxPrimary := resolveBounds(form, form.YAxisBounds, stacked)
	minSecondary, maxSecondary := resolveBounds(form, form.YAxisBoundsSecondary, stacked)

	// 5. Styling.
	st := newStyler(form, cfg.scale, primaryFormats, secondaryFormats, maxPrimary, maxSecondary)
	var series []*echarts.Series
	origin := make(map[string]seriesOrigin)
	for _, s := range extA.series {
		styled := st.style(s, clampAxis(form.QueryA), qA.LabelMap, hiddenA[s.Key], topA)
		origin[styled.Name] = seriesOrigin{key: s.Key, secondary: false}
		series = append(series, styled)
	}
	for _, s := range extB.series {
		styled := st.style(s, clampAxis(form.QueryB), qB.LabelMap, hiddenB[s.Key], topB)
		origin[styled.Name] = seriesOrigin{key: s.Key, secondary: true}
		series = append(series, styled)
	}

	// 6. Annotation overlays, sharing the primary x domain.
	overlays, layers, err := mergeAnnotations(form.Annotations, extA.xDomain)
	if err != nil {
		return nil, err
	}
	series = append(series, overlays...)

	// 7. Assembly.
	series = dedupSeries(series)

	xType := resolveXAxisType(form, qA, qB)
	option := &echarts.Option{
		Grid:   &echarts.Grid{ContainLabel: true},
		XAxis:  buildXAxis(form, xType),
		YAxis: []*echarts.Axis{
			buildYAxis(form.YAxisTitle, form.YAxisFormat, form.LogAxis, form.MinorSplitLine, minPrimary, maxPrimary),
			buildYAxis(form.YAxisTitleSecondary, form.YAxisFormatSecondary, form.LogAxisSecondary, false, minSecondary, maxSecondary),
		},
		Series:   series,
		Tooltip:  buildTooltipSpec(form),
		Legend:   buildLegend(form, series, layers),
		DataZoom: buildDataZoom(form),
	}

	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}

	focus := cfg.focus
	result := &RenderConfig{
		Option:           option,
		LabelMapA:        qA.LabelMap,
		LabelMapB:        qB.LabelMap,
		GroupByA:         form.QueryA.GroupBy,
		GroupByB:         form.QueryB.GroupBy,
		ColTypes:         qA.ColTypes,
		SeriesCount:      len(series),
		SelectedSeries:   selectedSeriesIndexes(names, renderCtx.FilterState),
		Formatters:       st.formatters,
		TooltipFormatter: buildTooltipFormatter(form, st.formatters, focus, form.TooltipSortByMetric),
		Focus:            focus,
		OnContextMenu:    renderCtx.OnContextMenu,
	}
	result.EmitCrossFilter = func(seriesName string) {
		if renderCtx.OnDataMask == nil {
			return
		}
		o, ok := origin[seriesName]
		if !ok {
			renderCtx.OnDataMask(DataMask{SelectedValues: []string{seriesName}})
			return
		}
		labelMap, groupBy := qA.LabelMap, form.QueryA.GroupBy
		if o.secondary {
			labelMap, groupBy = qB.LabelMap, form.QueryB.GroupBy
		}
		renderCtx.OnDataMask(buildDataMask(o.key, labelMap, groupBy, o.secondary))
	}

	cfg.logger.Debug("transform complete",
		zap.Int("primarySeries", len(extA.series)),
		zap.Int("secondarySeries", len(extB.series)),
		zap.Int("overlaySeries", len(overlays)),
		zap.Int("emitted", len(series)),
		zap.String("xAxisType", string(xType)))

	return result, nil
}

type seriesOrigin struct {
	key       string
	secondary bool
}

// prepareQuery rebases forecast columns and fills in missing coltype
// metadata. The caller's QueryResult is never mutated.
func prepareQuery(q chartdata.QueryResult) chartdata.QueryResult {
	out := q
	out.Data = rebaseRecords(q.Data, q.VerboseMap)
	if len(out.ColTypes) == 0 {
		out.ColTypes = chartdata.InferColTypes(out.Data)
	}
	return out
}

// axisMetrics collects the metric identities targeting each y axis,
// preferring the form's metric lists and falling back to the extracted
// series' base identities.
func axisMetrics(form formdata.FormData, extA, extB extraction) (primary, secondary []string) {
	collect := func(opts formdata.QueryOptions, ext extraction) []string {
		metrics := opts.Metrics
		if len(metrics) == 0 {
			for _, s := range ext.series {
				ctx := ParseForecastContext(stripDedupSuffix(s.Key))
				metrics = append(metrics, StripTimeShift(ctx.Name, opts.TimeShifts))
			}
		}
		return metrics
	}
	for _, q := range []struct {
		opts formdata.QueryOptions
		ext  extraction
	}{{form.QueryA, extA}, {form.QueryB, extB}} {
		if clampAxis(q.opts).YAxisIndex == 1 {
			secondary = append(secondary, collect(q.opts, q.ext)...)
		} else {
			primary = append(primary, collect(q.opts, q.ext)...)
		}
	}
	return primary, secondary
}

func clampAxis(opts formdata.QueryOptions) formdata.QueryOptions {
	if opts.YAxisIndex != 1 {
		opts.YAxisIndex = 0
	}
	return opts
}

// dedupSeries drops later series whose id repeats an earlier one.
func dedupSeries(series []*echarts.Series) []*echarts.Series {
	seen := make(map[string]bool, len(series))
	out := series[:0]
	for _, s := range series {
		id := s.ID
		if id == "" {
			id = s.Name
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, s)
	}
	return out
}
