package engine

import (
	"math"
	"strings"

	"github.com/spektr-org/chartform/chartdata"
)

// ============================================================================
// FORECAST REBASING — Confidence-interval column handling
// ============================================================================
// Forecast columns follow a structured suffix convention:
//
//   sales               observation
//   sales__yhat         trend
//   sales__yhat_lower   lower confidence bound
//   sales__yhat_upper   upper confidence bound
//
// Rebasing (a) resolves verbose column aliases back to the underlying
// names and (b) re-expresses the upper bound as (upper − lower) so the
// band renders by stacking the upper series on the transparent lower
// series.
// ============================================================================

// ForecastVariant classifies a series name.
type ForecastVariant int

const (
	Observation ForecastVariant = iota
	Trend
	LowerBound
	UpperBound
)

const (
	suffixTrend = "__yhat"
	suffixLower = "__yhat_lower"
	suffixUpper = "__yhat_upper"
)

// ForecastContext is the parsed classification of a series name.
type ForecastContext struct {
	Name    string // base metric/dimension identity
	Variant ForecastVariant
}

// ParseForecastContext recovers the base name and variant from the
// suffix convention. Names without a forecast suffix are observations.
func ParseForecastContext(name string) ForecastContext {
	switch {
	case strings.HasSuffix(name, suffixLower):
		return ForecastContext{Name: strings.TrimSuffix(name, suffixLower), Variant: LowerBound}
	case strings.HasSuffix(name, suffixUpper):
		return ForecastContext{Name: strings.TrimSuffix(name, suffixUpper), Variant: UpperBound}
	case strings.HasSuffix(name, suffixTrend):
		return ForecastContext{Name: strings.TrimSuffix(name, suffixTrend), Variant: Trend}
	default:
		return ForecastContext{Name: name, Variant: Observation}
	}
}

// rebaseRecords returns records with verbose aliases resolved to raw
// names and upper bounds rebased to band heights. The input records
// are not mutated.
func rebaseRecords(records []chartdata.DataRecord, verboseMap map[string]string) []chartdata.DataRecord {
	reverse := make(map[string]string, len(verboseMap))
	for raw, verbose := range verboseMap {
		reverse[verbose] = raw
	}

	out := make([]chartdata.DataRecord, len(records))
	for i, rec := range records {
		next := make(chartdata.DataRecord, len(rec))
		for col, v := range rec {
			next[resolveAlias(col, reverse)] = v
		}
		// Band height: upper carries (upper − lower) after rebasing.
		for col := range next {
			ctx := ParseForecastContext(col)
			if ctx.Variant != UpperBound {
				continue
			}
			upper := next.Float(col)
			lower := next.Float(ctx.Name + suffixLower)
			if !math.IsNaN(upper) && !math.IsNaN(lower) {
				next[col] = upper - lower
			}
		}
		out[i] = next
	}
	return out
}

// resolveAlias maps a possibly-verbose column (with or without a
// forecast suffix) back to its raw name.
func resolveAlias(col string, reverse map[string]string) string {
	if raw, ok := reverse[col]; ok {
		return raw
	}
	ctx := ParseForecastContext(col)
	if ctx.Variant == Observation {
		return col
	}
	if raw, ok := reverse[ctx.Name]; ok {
		return raw + col[len(ctx.Name):]
	}
	return col
}
