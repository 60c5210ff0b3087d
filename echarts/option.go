package echarts

// ============================================================================
// ECHARTS OPTION TYPES — Declarative render configuration
// ============================================================================
// Typed mirror of the ECharts option subset the transform emits.
// Everything here is data: formatter closures live on the RenderConfig
// side channel, not inside the marshaled option.
// ============================================================================

// Option is the top-level chart configuration.
type Option struct {
	Grid     *Grid      `json:"grid,omitempty"`
	XAxis    *Axis      `json:"xAxis,omitempty"`
	YAxis    []*Axis    `json:"yAxis,omitempty"`
	Series   []*Series  `json:"series"`
	Tooltip  *Tooltip   `json:"tooltip,omitempty"`
	Legend   *Legend    `json:"legend,omitempty"`
	DataZoom []DataZoom `json:"dataZoom,omitempty"`
}

// Grid positions the plotting area.
type Grid struct {
	Top          any  `json:"top,omitempty"`
	Bottom       any  `json:"bottom,omitempty"`
	Left         any  `json:"left,omitempty"`
	Right        any  `json:"right,omitempty"`
	ContainLabel bool `json:"containLabel,omitempty"`
}

// AxisType enumerates ECharts axis types.
type AxisType string

const (
	AxisTypeValue    AxisType = "value"
	AxisTypeCategory AxisType = "category"
	AxisTypeTime     AxisType = "time"
	AxisTypeLog      AxisType = "log"
)

// Axis describes one x or y axis.
type Axis struct {
	Type      AxisType   `json:"type"`
	Name      string     `json:"name,omitempty"`
	Min       *float64   `json:"min,omitempty"`
	Max       *float64   `json:"max,omitempty"`
	Scale     bool       `json:"scale,omitempty"`
	Inverse   bool       `json:"inverse,omitempty"`
	AxisLabel *AxisLabel `json:"axisLabel,omitempty"`
	SplitLine *SplitLine `json:"splitLine,omitempty"`
	MinorTick *MinorTick `json:"minorTick,omitempty"`
	Data      []string   `json:"data,omitempty"`
}

// AxisLabel styles axis tick labels. Formatter carries a format key
// the host resolves, not a closure.
type AxisLabel struct {
	Formatter string `json:"formatter,omitempty"`
	Rotate    int    `json:"rotate,omitempty"`
	HideOverlap bool `json:"hideOverlap,omitempty"`
}

// SplitLine toggles grid lines for an axis.
type SplitLine struct {
	Show bool `json:"show"`
}

// MinorTick toggles minor tick marks.
type MinorTick struct {
	Show bool `json:"show"`
}

// SeriesType enumerates the series renderers the transform emits.
type SeriesType string

const (
	SeriesTypeLine    SeriesType = "line"
	SeriesTypeBar     SeriesType = "bar"
	SeriesTypeScatter SeriesType = "scatter"
)

// Series is one plotted trace.
type Series struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name"`
	Type       SeriesType `json:"type"`
	Data       [][]any    `json:"data"`
	Stack      string     `json:"stack,omitempty"`
	YAxisIndex int        `json:"yAxisIndex,omitempty"`
	Color      string     `json:"color,omitempty"`
	Smooth     bool       `json:"smooth,omitempty"`
	Step       string     `json:"step,omitempty"`
	Symbol     string     `json:"symbol,omitempty"`
	SymbolSize float64    `json:"symbolSize,omitempty"`
	ShowSymbol bool       `json:"showSymbol,omitempty"`
	ZLevel     int        `json:"zlevel,omitempty"`

	AreaStyle *AreaStyle `json:"areaStyle,omitempty"`
	LineStyle *LineStyle `json:"lineStyle,omitempty"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
	Label     *Label     `json:"label,omitempty"`
	MarkArea  *MarkArea  `json:"markArea,omitempty"`
	MarkLine  *MarkLine  `json:"markLine,omitempty"`
}

// AreaStyle fills the area under a line series.
type AreaStyle struct {
	Opacity float64 `json:"opacity"`
}

// LineStyle styles a line series stroke.
type LineStyle struct {
	Width   float64 `json:"width,omitempty"`
	Type    string  `json:"type,omitempty"` // "solid", "dashed", "dotted"
	Opacity float64 `json:"opacity,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// ItemStyle styles series items (bars, points).
type ItemStyle struct {
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Label controls per-point value labels. FormatterKey names the
// metric whose formatter renders the label; the host resolves it
// through the RenderConfig's formatter side channel.
type Label struct {
	Show         bool   `json:"show"`
	Position     string `json:"position,omitempty"`
	FormatterKey string `json:"formatterKey,omitempty"`
}

// MarkArea shades x ranges (interval annotations).
type MarkArea struct {
	Silent    bool             `json:"silent,omitempty"`
	ItemStyle *ItemStyle       `json:"itemStyle,omitempty"`
	Label     *Label           `json:"label,omitempty"`
	Data      [][]MarkAreaEdge `json:"data"`
}

// MarkAreaEdge is one end of a shaded range.
type MarkAreaEdge struct {
	Name  string `json:"name,omitempty"`
	XAxis any    `json:"xAxis"`
}

// MarkLine draws vertical marker lines (event annotations).
type MarkLine struct {
	Silent    bool           `json:"silent,omitempty"`
	Symbol    string         `json:"symbol,omitempty"`
	LineStyle *LineStyle     `json:"lineStyle,omitempty"`
	Label     *Label         `json:"label,omitempty"`
	Data      []MarkLineData `json:"data"`
}

// MarkLineData positions one marker line.
type MarkLineData struct {
	Name  string `json:"name,omitempty"`
	XAxis any    `json:"xAxis"`
}

// Tooltip configures hover behavior.
type Tooltip struct {
	Show         bool   `json:"show"`
	Trigger      string `json:"trigger"` // "axis" or "item"
	AppendToBody bool   `json:"appendToBody,omitempty"`
}

// Legend configures the series legend.
type Legend struct {
	Show   bool     `json:"show"`
	Type   string   `json:"type,omitempty"`   // "scroll" or "plain"
	Orient string   `json:"orient,omitempty"` // "horizontal" or "vertical"
	Top    any      `json:"top,omitempty"`
	Right  any      `json:"right,omitempty"`
	Data   []string `json:"data,omitempty"`
}

// DataZoom configures zoom controls.
type DataZoom struct {
	Type       string `json:"type"` // "slider" or "inside"
	Start      int    `json:"start"`
	End        int    `json:"end"`
	XAxisIndex int    `json:"xAxisIndex"`
}
