package formdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/chartform/annotation"
	"github.com/spektr-org/chartform/format"
)

// ============================================================================
// FORM DATA — Chart configuration merged over defaults
// ============================================================================
// Every chart option lives here, flat and read-only. Loading works by
// unmarshalling user input onto a Defaults() value, so an explicit
// option always wins and anything unset keeps its default.
// ============================================================================

// SeriesKind selects the renderer for one query's series.
type SeriesKind string

const (
	KindLine    SeriesKind = "line"
	KindBar     SeriesKind = "bar"
	KindSmooth  SeriesKind = "smooth"
	KindStep    SeriesKind = "step"
	KindScatter SeriesKind = "scatter"
)

// AxisBounds are optional explicit y-axis bounds. Nil means auto.
type AxisBounds struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// QueryOptions configure one query slot's series.
type QueryOptions struct {
	SeriesType    SeriesKind `json:"seriesType" yaml:"seriesType"`
	Stack         bool       `json:"stack" yaml:"stack"`
	Area          bool       `json:"area" yaml:"area"`
	Opacity       float64    `json:"opacity" yaml:"opacity"`
	MarkerEnabled bool       `json:"markerEnabled" yaml:"markerEnabled"`
	MarkerSize    float64    `json:"markerSize" yaml:"markerSize"`
	ShowValue     bool       `json:"showValue" yaml:"showValue"`
	YAxisIndex    int        `json:"yAxisIndex" yaml:"yAxisIndex"`
	GroupBy       []string   `json:"groupBy" yaml:"groupBy"`
	Metrics       []string   `json:"metrics" yaml:"metrics"`

	// TimeShifts lists the active time-comparison offsets
	// ("1 week ago"); series suffixed with one share the base color.
	TimeShifts []string `json:"timeShifts,omitempty" yaml:"timeShifts,omitempty"`
}

// FormData is the complete chart configuration.
type FormData struct {
	XAxis                 string `json:"xAxis" yaml:"xAxis"`
	XAxisTitle            string `json:"xAxisTitle,omitempty" yaml:"xAxisTitle,omitempty"`
	XAxisTimeFormat       string `json:"xAxisTimeFormat" yaml:"xAxisTimeFormat"`
	XAxisForceCategorical bool   `json:"xAxisForceCategorical" yaml:"xAxisForceCategorical"`

	QueryA QueryOptions `json:"queryA" yaml:"queryA"`
	QueryB QueryOptions `json:"queryB" yaml:"queryB"`

	// ContributionMode "row" normalizes stacked values to their share
	// of the per-x total. Empty disables contribution.
	ContributionMode string `json:"contributionMode,omitempty" yaml:"contributionMode,omitempty"`

	SortSeriesBy        string `json:"sortSeriesBy,omitempty" yaml:"sortSeriesBy,omitempty"`
	SortSeriesAscending bool   `json:"sortSeriesAscending" yaml:"sortSeriesAscending"`

	YAxisFormat             string            `json:"yAxisFormat" yaml:"yAxisFormat"`
	YAxisFormatSecondary    string            `json:"yAxisFormatSecondary" yaml:"yAxisFormatSecondary"`
	YAxisTitle              string            `json:"yAxisTitle,omitempty" yaml:"yAxisTitle,omitempty"`
	YAxisTitleSecondary     string            `json:"yAxisTitleSecondary,omitempty" yaml:"yAxisTitleSecondary,omitempty"`
	CurrencyFormat          format.Currency   `json:"currencyFormat,omitempty" yaml:"currencyFormat,omitempty"`
	CurrencyFormatSecondary format.Currency   `json:"currencyFormatSecondary,omitempty" yaml:"currencyFormatSecondary,omitempty"`
	ColumnFormats           map[string]string `json:"columnFormats,omitempty" yaml:"columnFormats,omitempty"`

	YAxisBounds          AxisBounds `json:"yAxisBounds" yaml:"yAxisBounds"`
	YAxisBoundsSecondary AxisBounds `json:"yAxisBoundsSecondary" yaml:"yAxisBoundsSecondary"`
	TruncateYAxis        bool       `json:"truncateYAxis" yaml:"truncateYAxis"`
	LogAxis              bool       `json:"logAxis" yaml:"logAxis"`
	LogAxisSecondary     bool       `json:"logAxisSecondary" yaml:"logAxisSecondary"`
	MinorSplitLine       bool       `json:"minorSplitLine" yaml:"minorSplitLine"`

	RichTooltip         bool   `json:"richTooltip" yaml:"richTooltip"`
	TooltipSortByMetric bool   `json:"tooltipSortByMetric" yaml:"tooltipSortByMetric"`
	TooltipTimeFormat   string `json:"tooltipTimeFormat" yaml:"tooltipTimeFormat"`

	ShowLegend        bool   `json:"showLegend" yaml:"showLegend"`
	LegendOrientation string `json:"legendOrientation" yaml:"legendOrientation"`
	LegendType        string `json:"legendType" yaml:"legendType"`

	Zoomable            bool    `json:"zoomable" yaml:"zoomable"`
	PercentageThreshold float64 `json:"percentageThreshold" yaml:"percentageThreshold"`
	OnlyTotal           bool    `json:"onlyTotal" yaml:"onlyTotal"`

	ColorScheme string              `json:"colorScheme" yaml:"colorScheme"`
	Annotations []annotation.Config `json:"annotationLayers,omitempty" yaml:"annotationLayers,omitempty"`
}

// Defaults returns the baseline configuration user input merges onto.
func Defaults() FormData {
	return FormData{
		XAxisTimeFormat: format.SmartDateFormat,
		QueryA: QueryOptions{
			SeriesType: KindLine,
			Opacity:    0.2,
			MarkerSize: 6,
		},
		QueryB: QueryOptions{
			SeriesType: KindLine,
			Opacity:    0.2,
			MarkerSize: 6,
			YAxisIndex: 1,
		},
		YAxisFormat:          format.SmartNumberFormat,
		YAxisFormatSecondary: format.SmartNumberFormat,
		RichTooltip:          true,
		TooltipTimeFormat:    format.SmartDateFormat,
		ShowLegend:           true,
		LegendOrientation:    "top",
		LegendType:           "scroll",
		ColorScheme:          "default",
	}
}

// Load merges serialized form data onto the defaults. JSON and YAML
// are both accepted; JSON is tried first.
func Load(data []byte) (FormData, error) {
	fd := Defaults()
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, &fd); err != nil {
			return fd, fmt.Errorf("parse form data: %w", err)
		}
		return fd, nil
	}
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return fd, fmt.Errorf("parse form data: %w", err)
	}
	return fd, nil
}

// LoadFile loads form data from a .json, .yaml, or .yml file.
func LoadFile(path string) (FormData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), fmt.Errorf("read form data: %w", err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		fd := Defaults()
		if err := yaml.Unmarshal(data, &fd); err != nil {
			return fd, fmt.Errorf("parse %s: %w", path, err)
		}
		return fd, nil
	default:
		return Load(data)
	}
}
