package engine

import (
	"fmt"

	"github.com/spektr-org/chartform/annotation"
	"github.com/spektr-org/chartform/echarts"
)

// ============================================================================
// ANNOTATION MERGE — Overlay layers appended after the base series
// ============================================================================
// Exhaustive dispatch over the four layer variants. Disabled layers
// contribute nothing; overlay series never join the contribution math.
// ============================================================================

// mergeAnnotations builds the overlay series for every enabled layer
// and returns the typed layers for legend synthesis.
func mergeAnnotations(configs []annotation.Config, xDomain []any) ([]*echarts.Series, []annotation.Layer, error) {
	var series []*echarts.Series
	var layers []annotation.Layer

	for _, cfg := range configs {
		layer, err := cfg.Variant()
		if err != nil {
			return nil, nil, err
		}
		layers = append(layers, layer)
		if !layer.Visible() {
			continue
		}

		switch l := layer.(type) {
		case annotation.FormulaLayer:
			s, err := annotation.BuildFormula(l, xDomain)
			if err != nil {
				return nil, nil, err
			}
			series = append(series, s)
		case annotation.IntervalLayer:
			series = append(series, annotation.BuildInterval(l))
		case annotation.EventLayer:
			series = append(series, annotation.BuildEvent(l))
		case annotation.TimeseriesLayer:
			series = append(series, annotation.BuildTimeseries(l)...)
		default:
			return nil, nil, fmt.Errorf("annotation %q: unhandled layer variant %T", layer.LayerName(), layer)
		}
	}
	return series, layers, nil
}
