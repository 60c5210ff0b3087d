package annotation

import (
	"fmt"

	"github.com/spektr-org/chartform/chartdata"
)

// ============================================================================
// ANNOTATION LAYERS — Tagged union of overlay variants
// ============================================================================
// A layer is configured in the form data as a flat Config (so it loads
// cleanly from JSON/YAML), then converted into its typed variant for
// exhaustive dispatch. Four variants exist:
//
//   formula     a line computed from an expression over the x domain
//   interval    shaded regions from paired start/end records
//   event       vertical markers from point records
//   timeseries  extra line series from an annotation query
// ============================================================================

// LayerType tags an annotation variant.
type LayerType string

const (
	TypeFormula    LayerType = "FORMULA"
	TypeInterval   LayerType = "INTERVAL"
	TypeEvent      LayerType = "EVENT"
	TypeTimeseries LayerType = "TIME_SERIES"
)

// Config is the flat, serializable layer configuration.
type Config struct {
	Name    string    `json:"name" yaml:"name"`
	Type    LayerType `json:"annotationType" yaml:"annotationType"`
	Show    bool      `json:"show" yaml:"show"`
	Color   string    `json:"color,omitempty" yaml:"color,omitempty"`
	Opacity float64   `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Style   string    `json:"style,omitempty" yaml:"style,omitempty"` // "solid", "dashed", "dotted"
	Width   float64   `json:"width,omitempty" yaml:"width,omitempty"`

	// Formula
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Interval / Event / Timeseries data source
	Data              []chartdata.DataRecord `json:"data,omitempty" yaml:"data,omitempty"`
	TimeColumn        string                 `json:"timeColumn,omitempty" yaml:"timeColumn,omitempty"`
	IntervalEndColumn string                 `json:"intervalEndColumn,omitempty" yaml:"intervalEndColumn,omitempty"`
	TitleColumn       string                 `json:"titleColumn,omitempty" yaml:"titleColumn,omitempty"`

	// Timeseries
	ValueColumn  string  `json:"valueColumn,omitempty" yaml:"valueColumn,omitempty"`
	SeriesColumn string  `json:"seriesColumn,omitempty" yaml:"seriesColumn,omitempty"`
	ShowMarkers  bool    `json:"showMarkers,omitempty" yaml:"showMarkers,omitempty"`
	MarkerSize   float64 `json:"markerSize,omitempty" yaml:"markerSize,omitempty"`
	HideLine     bool    `json:"hideLine,omitempty" yaml:"hideLine,omitempty"`
}

// Layer is one typed annotation variant.
type Layer interface {
	LayerName() string
	Visible() bool
}

// FormulaLayer draws a computed line across the x domain.
type FormulaLayer struct {
	Name       string
	Show       bool
	Expression string
	Color      string
	Style      string
	Width      float64
}

func (l FormulaLayer) LayerName() string { return l.Name }
func (l FormulaLayer) Visible() bool     { return l.Show }

// IntervalLayer shades start/end ranges.
type IntervalLayer struct {
	Name              string
	Show              bool
	Color             string
	Opacity           float64
	Data              []chartdata.DataRecord
	TimeColumn        string
	IntervalEndColumn string
	TitleColumn       string
}

func (l IntervalLayer) LayerName() string { return l.Name }
func (l IntervalLayer) Visible() bool     { return l.Show }

// EventLayer draws vertical markers at point records.
type EventLayer struct {
	Name        string
	Show        bool
	Color       string
	Style       string
	Width       float64
	Data        []chartdata.DataRecord
	TimeColumn  string
	TitleColumn string
}

func (l EventLayer) LayerName() string { return l.Name }
func (l EventLayer) Visible() bool     { return l.Show }

// TimeseriesLayer plots extra series from an annotation query.
type TimeseriesLayer struct {
	Name         string
	Show         bool
	Color        string
	Style        string
	Width        float64
	Data         []chartdata.DataRecord
	TimeColumn   string
	ValueColumn  string
	SeriesColumn string
	ShowMarkers  bool
	MarkerSize   float64
	HideLine     bool
}

func (l TimeseriesLayer) LayerName() string { return l.Name }
func (l TimeseriesLayer) Visible() bool     { return l.Show }

// Variant converts a flat Config into its typed layer.
func (c Config) Variant() (Layer, error) {
	switch c.Type {
	case TypeFormula:
		if c.Value == "" {
			return nil, fmt.Errorf("annotation %q: formula layer needs an expression", c.Name)
		}
		return FormulaLayer{
			Name:       c.Name,
			Show:       c.Show,
			Expression: c.Value,
			Color:      c.Color,
			Style:      c.Style,
			Width:      c.Width,
		}, nil
	case TypeInterval:
		if c.IntervalEndColumn == "" {
			return nil, fmt.Errorf("annotation %q: interval layer needs an interval end column", c.Name)
		}
		return IntervalLayer{
			Name:              c.Name,
			Show:              c.Show,
			Color:             c.Color,
			Opacity:           c.Opacity,
			Data:              c.Data,
			TimeColumn:        c.TimeColumn,
			IntervalEndColumn: c.IntervalEndColumn,
			TitleColumn:       c.TitleColumn,
		}, nil
	case TypeEvent:
		return EventLayer{
			Name:        c.Name,
			Show:        c.Show,
			Color:       c.Color,
			Style:       c.Style,
			Width:       c.Width,
			Data:        c.Data,
			TimeColumn:  c.TimeColumn,
			TitleColumn: c.TitleColumn,
		}, nil
	case TypeTimeseries:
		return TimeseriesLayer{
			Name:         c.Name,
			Show:         c.Show,
			Color:        c.Color,
			Style:        c.Style,
			Width:        c.Width,
			Data:         c.Data,
			TimeColumn:   c.TimeColumn,
			ValueColumn:  c.ValueColumn,
			SeriesColumn: c.SeriesColumn,
			ShowMarkers:  c.ShowMarkers,
			MarkerSize:   c.MarkerSize,
			HideLine:     c.HideLine,
		}, nil
	default:
		return nil, fmt.Errorf("annotation %q: unknown layer type %q", c.Name, c.Type)
	}
}
