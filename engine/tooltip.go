package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/spektr-org/chartform/annotation"
	"github.com/spektr-org/chartform/echarts"
	"github.com/spektr-org/chartform/format"
	"github.com/spektr-org/chartform/formdata"
)

// ============================================================================
// TOOLTIP / LEGEND / ZOOM ASSEMBLY
// ============================================================================
// Rich tooltips trigger per axis (every series at the hovered x) and
// sort rows by the designated metric's value or keep series order.
// The legend lists observation series only — forecast bounds and trend
// lines stay out of it but remain interactive in the tooltip — plus
// one synthesized entry per visible annotation layer.
// ============================================================================

func buildTooltipSpec(form formdata.FormData) *echarts.Tooltip {
	trigger := "item"
	if form.RichTooltip {
		trigger = "axis"
	}
	return &echarts.Tooltip{
		Show:         true,
		Trigger:      trigger,
		AppendToBody: true,
	}
}

// buildTooltipFormatter closes over the per-series formatters, the
// focus cell, and the x time formatter.
func buildTooltipFormatter(form formdata.FormData, formatters *SeriesFormatters, focus *FocusCell, sortByValue bool) TooltipFormatter {
	headerFormat := format.Time(form.TooltipTimeFormat)

	return func(x any, points []TooltipPoint) TooltipContent {
		rows := make([]TooltipRow, 0, len(points))
		focused, hasFocus := focus.Name()

		ordered := points
		if sortByValue {
			ordered = make([]TooltipPoint, len(points))
			copy(ordered, points)
			sort.SliceStable(ordered, func(i, j int) bool {
				return ordered[i].Value > ordered[j].Value
			})
		}

		for _, p := range ordered {
			vf := formatters.Value[p.SeriesID]
			if vf == nil {
				vf = format.SmartNumber
			}
			rows = append(rows, TooltipRow{
				Name:           p.SeriesName,
				FormattedValue: vf(p.Value),
				Focused:        hasFocus && p.SeriesName == focused,
			})
		}

		header := ""
		switch xv := x.(type) {
		case time.Time:
			header = headerFormat(xv)
		case string:
			header = xv
		default:
			header = format.SmartNumber(toFloat(xv))
		}
		return TooltipContent{Header: header, Rows: rows}
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// buildLegend assembles the legend spec restricted to observation
// series plus one entry per visible annotation layer: a layer that
// splits into several sub-series still legends as its layer name.
func buildLegend(form formdata.FormData, series []*echarts.Series, layers []annotation.Layer) *echarts.Legend {
	var entries []string
	annotated := make(map[string]bool, len(layers))
	for _, l := range layers {
		if l.Visible() {
			annotated[l.LayerName()] = true
		}
	}
	listed := make(map[string]bool, len(annotated))
	for _, s := range series {
		if owner, ok := annotationOwner(s.Name, annotated); ok {
			if !listed[owner] {
				listed[owner] = true
				entries = append(entries, owner)
			}
			continue
		}
		if ParseForecastContext(s.ID).Variant == Observation {
			entries = append(entries, s.Name)
		}
	}

	legend := &echarts.Legend{
		Show: form.ShowLegend,
		Type: form.LegendType,
		Data: entries,
	}
	switch form.LegendOrientation {
	case "left", "right":
		legend.Orient = "vertical"
	default:
		legend.Orient = "horizontal"
	}
	if form.LegendOrientation == "right" {
		legend.Right = 0
	}
	return legend
}

// annotationOwner resolves a series name to its annotation layer:
// either the layer name itself or a "layer, sub" split series.
func annotationOwner(seriesName string, layers map[string]bool) (string, bool) {
	if layers[seriesName] {
		return seriesName, true
	}
	for name := range layers {
		if strings.HasPrefix(seriesName, name+", ") {
			return name, true
		}
	}
	return "", false
}

func buildDataZoom(form formdata.FormData) []echarts.DataZoom {
	if !form.Zoomable {
		return nil
	}
	return []echarts.DataZoom{
		{Type: "slider", Start: 0, End: 100, XAxisIndex: 0},
	}
}
