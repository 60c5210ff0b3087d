package engine

import (
	"github.com/spektr-org/chartform/chartdata"
	"github.com/spektr-org/chartform/echarts"
	"github.com/spektr-org/chartform/format"
)

// ============================================================================
// ENGINE TYPES — Transform inputs and outputs
// ============================================================================
// The transform is (queries, form data, render context) → RenderConfig.
// Everything in here is derived per invocation; nothing persists across
// calls except the FocusCell the host holds.
// ============================================================================

// Queries carries the two query slots. The secondary slot may be empty.
type Queries struct {
	A chartdata.QueryResult `json:"a"`
	B chartdata.QueryResult `json:"b"`
}

// Point is one (x, y) sample of a series.
type Point struct {
	X any
	Y float64
}

// Series is an extracted, pre-styling series: the raw label-map key,
// its ordered points, and which query slot produced it.
type Series struct {
	Key       string
	Points    []Point
	Secondary bool
}

// FilterState is the host's current cross-filter selection.
type FilterState struct {
	SelectedValues []string `json:"selectedValues,omitempty"`
}

// ContextMenuFunc is invoked when the host forwards a context-menu
// event on a series point.
type ContextMenuFunc func(seriesName string, x any)

// DataMaskFunc receives the cross-filter emission.
type DataMaskFunc func(DataMask)

// FilterClause is one column-in-values constraint of a data mask.
type FilterClause struct {
	Column string   `json:"col"`
	Op     string   `json:"op"`
	Values []string `json:"val"`
}

// DataMask is the cross-filter state emitted when a series is selected.
type DataMask struct {
	Filters        []FilterClause `json:"filters,omitempty"`
	SelectedValues []string       `json:"selectedValues,omitempty"`
}

// RenderContext is the host-supplied environment for one transform.
type RenderContext struct {
	FilterState   FilterState
	OnContextMenu ContextMenuFunc
	OnDataMask    DataMaskFunc
}

// LabelFormatter renders one point's value label. An empty string
// hides the label; suppression decisions (percentage threshold,
// only-total, over-max bars) are baked into the closure.
type LabelFormatter func(dataIndex int, value float64) string

// SeriesFormatters is the per-series formatter side channel. Keys are
// series ids from the emitted option.
type SeriesFormatters struct {
	Value map[string]format.ValueFormatter
	Label map[string]LabelFormatter
}

// TooltipPoint is the hovered data the host feeds back into the
// tooltip formatter.
type TooltipPoint struct {
	SeriesID   string
	SeriesName string
	Value      float64
}

// TooltipRow is one rendered tooltip line.
type TooltipRow struct {
	Name           string
	FormattedValue string
	Focused        bool
}

// TooltipContent is the rendered tooltip for one hover.
type TooltipContent struct {
	Header string
	Rows   []TooltipRow
}

// TooltipFormatter renders tooltip content for the hovered x value.
type TooltipFormatter func(x any, points []TooltipPoint) TooltipContent

// RenderConfig is the transform output: the declarative option plus
// the side channels and callbacks the host wires up.
type RenderConfig struct {
	Option *echarts.Option `json:"echartOptions"`

	LabelMapA   chartdata.LabelMap                    `json:"labelMap,omitempty"`
	LabelMapB   chartdata.LabelMap                    `json:"labelMapB,omitempty"`
	GroupByA    []string                              `json:"groupby,omitempty"`
	GroupByB    []string                              `json:"groupbyB,omitempty"`
	ColTypes    map[string]chartdata.GenericDataType  `json:"coltypeMapping,omitempty"`
	SeriesCount int                                   `json:"seriesCount"`

	// SelectedSeries maps emitted series index → series name for the
	// currently selected cross-filter values.
	SelectedSeries map[int]string `json:"selectedValues,omitempty"`

	// Callbacks and closures; never serialized.
	Formatters       *SeriesFormatters `json:"-"`
	TooltipFormatter TooltipFormatter  `json:"-"`
	Focus            *FocusCell        `json:"-"`
	EmitCrossFilter  func(seriesName string) `json:"-"`
	OnContextMenu    ContextMenuFunc   `json:"-"`
}
