package annotation

import (
	"fmt"

	"github.com/spektr-org/chartform/chartdata"
	"github.com/spektr-org/chartform/echarts"
)

// ============================================================================
// OVERLAY BUILDERS — Layer variant → series
// ============================================================================
// Each visible layer contributes series appended after the base query
// series. Overlay series never participate in stacking or contribution
// math; interval and event layers render through mark areas and mark
// lines on an otherwise empty carrier series.
// ============================================================================

const (
	defaultLayerColor   = "#FA8C16"
	defaultLayerOpacity = 0.2
	defaultLineWidth    = 1
)

// BuildFormula evaluates a formula layer across the x domain and
// returns one line series.
func BuildFormula(l FormulaLayer, xDomain []any) (*echarts.Series, error) {
	f, err := CompileFormula(l.Expression)
	if err != nil {
		return nil, err
	}

	data := make([][]any, 0, len(xDomain))
	for i, x := range xDomain {
		y, err := f.Eval(NumericX(x, i))
		if err != nil {
			return nil, fmt.Errorf("annotation %q at x=%v: %w", l.Name, x, err)
		}
		data = append(data, []any{x, y})
	}

	return &echarts.Series{
		ID:   l.Name,
		Name: l.Name,
		Type: echarts.SeriesTypeLine,
		Data: data,
		LineStyle: &echarts.LineStyle{
			Width: lineWidth(l.Width),
			Type:  lineType(l.Style),
			Color: layerColor(l.Color),
		},
		Color:      layerColor(l.Color),
		ShowSymbol: false,
	}, nil
}

// BuildInterval emits one carrier series whose mark areas shade the
// layer's start/end ranges. Records missing either bound are skipped.
func BuildInterval(l IntervalLayer) *echarts.Series {
	var areas [][]echarts.MarkAreaEdge
	for _, rec := range l.Data {
		start := intervalEdge(rec, l.TimeColumn)
		end := intervalEdge(rec, l.IntervalEndColumn)
		if start == nil || end == nil {
			continue
		}
		name := rec.String(l.TitleColumn)
		areas = append(areas, []echarts.MarkAreaEdge{
			{Name: name, XAxis: start},
			{XAxis: end},
		})
	}

	opacity := l.Opacity
	if opacity == 0 {
		opacity = defaultLayerOpacity
	}

	return &echarts.Series{
		ID:   l.Name,
		Name: l.Name,
		Type: echarts.SeriesTypeLine,
		Data: [][]any{},
		MarkArea: &echarts.MarkArea{
			Silent: true,
			ItemStyle: &echarts.ItemStyle{
				Color:   layerColor(l.Color),
				Opacity: opacity,
			},
			Label: &echarts.Label{Show: true, Position: "insideTop"},
			Data:  areas,
		},
	}
}

// BuildEvent emits one carrier series whose mark lines sit at the
// layer's point records.
func BuildEvent(l EventLayer) *echarts.Series {
	var lines []echarts.MarkLineData
	for _, rec := range l.Data {
		x := intervalEdge(rec, l.TimeColumn)
		if x == nil {
			continue
		}
		lines = append(lines, echarts.MarkLineData{
			Name:  rec.String(l.TitleColumn),
			XAxis: x,
		})
	}

	return &echarts.Series{
		ID:   l.Name,
		Name: l.Name,
		Type: echarts.SeriesTypeLine,
		Data: [][]any{},
		MarkLine: &echarts.MarkLine{
			Silent: true,
			Symbol: "none",
			LineStyle: &echarts.LineStyle{
				Width: lineWidth(l.Width),
				Type:  lineType(l.Style),
				Color: layerColor(l.Color),
			},
			Label: &echarts.Label{Show: true, Position: "start"},
			Data:  lines,
		},
	}
}

// BuildTimeseries emits one line series per distinct series key in the
// layer's data. Without a series column the whole layer is one series.
func BuildTimeseries(l TimeseriesLayer) []*echarts.Series {
	grouped := make(map[string][][]any)
	var order []string

	for _, rec := range l.Data {
		x := intervalEdge(rec, l.TimeColumn)
		if x == nil {
			continue
		}
		key := l.Name
		if l.SeriesColumn != "" {
			if sub := rec.String(l.SeriesColumn); sub != "" {
				key = fmt.Sprintf("%s, %s", l.Name, sub)
			}
		}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], []any{x, rec.Float(l.ValueColumn)})
	}

	symbol := "none"
	if l.ShowMarkers {
		symbol = "circle"
	}
	width := lineWidth(l.Width)
	if l.HideLine {
		width = 0
	}

	series := make([]*echarts.Series, 0, len(order))
	for _, key := range order {
		series = append(series, &echarts.Series{
			ID:         key,
			Name:       key,
			Type:       echarts.SeriesTypeLine,
			Data:       grouped[key],
			Symbol:     symbol,
			SymbolSize: l.MarkerSize,
			ShowSymbol: l.ShowMarkers,
			Color:      layerColor(l.Color),
			LineStyle: &echarts.LineStyle{
				Width: width,
				Type:  lineType(l.Style),
				Color: layerColor(l.Color),
			},
		})
	}
	return series
}

// intervalEdge prefers a temporal reading, falling back to the raw value.
func intervalEdge(rec chartdata.DataRecord, col string) any {
	if col == "" {
		return nil
	}
	if t := rec.Time(col); !t.IsZero() {
		return t
	}
	if s := rec.String(col); s != "" {
		return s
	}
	return nil
}

func layerColor(c string) string {
	if c == "" {
		return defaultLayerColor
	}
	return c
}

func lineType(style string) string {
	switch style {
	case "dashed", "dotted", "solid":
		return style
	default:
		return "solid"
	}
}

func lineWidth(w float64) float64 {
	if w <= 0 {
		return defaultLineWidth
	}
	return w
}
