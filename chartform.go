// Package chartform turns tabular query results into render-ready
// chart configuration for mixed-axis timeseries charts.
//
// Usage:
//
//	import "github.com/spektr-org/chartform/engine"
//
//	cfg, err := engine.Transform(queries, form, renderCtx,
//	    engine.WithLogger(logger),
//	    engine.WithScale(scale),
//	)
//
// The engine takes two query results (primary and secondary slot), a
// flat form configuration, and a render context (current filter state,
// host hooks), and returns a declarative ECharts option plus side
// channels (label maps, selected values, tooltip formatter).
//
// The transform is a pure function: no I/O, no retained state except
// the explicit focused-series cell the host wires to its DOM events.
package chartform
