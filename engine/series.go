package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/spektr-org/chartform/chartdata"
)

// ============================================================================
// SERIES EXTRACTION — Records → ordered per-dimension series
// ============================================================================
// Pivots a query's records on the x-axis column into one series per
// label-map key. When stacking, gaps are zero-filled so stacked totals
// stay consistent across every x value. Also computes the per-x
// stacked totals used by contribution mode and label thresholding.
// ============================================================================

// extraction is the result of pivoting one query slot.
type extraction struct {
	series  []Series
	xDomain []any
	totals  map[any]float64
}

// seriesKeys returns the series columns of a query in a stable order:
// label-map order is undefined (it is a map), so keys sort
// lexicographically; without a label map every non-x column is a key.
func seriesKeys(q chartdata.QueryResult, xCol string) []string {
	var keys []string
	if len(q.LabelMap) > 0 {
		for k := range q.LabelMap {
			if k != xCol {
				keys = append(keys, k)
			}
		}
	} else {
		seen := make(map[string]bool)
		for _, rec := range q.Data {
			for k := range rec {
				if k != xCol && !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// extractSeries pivots records into series. fillZero substitutes zero
// for missing per-category values (required when stacking).
func extractSeries(q chartdata.QueryResult, xCol string, secondary, fillZero bool) extraction {
	keys := seriesKeys(q, xCol)

	var xDomain []any
	seenX := make(map[any]bool)
	values := make(map[string]map[any]float64, len(keys))
	for _, k := range keys {
		values[k] = make(map[any]float64)
	}

	temporal := q.IsTemporal(xCol)
	for _, rec := range q.Data {
		x := xValue(rec, xCol, temporal)
		if x == nil {
			continue
		}
		if !seenX[x] {
			seenX[x] = true
			xDomain = append(xDomain, x)
		}
		for _, k := range keys {
			v := rec.Float(k)
			if math.IsNaN(v) {
				continue
			}
			values[k][x] = v
		}
	}

	totals := make(map[any]float64, len(xDomain))
	series := make([]Series, 0, len(keys))
	for _, k := range keys {
		points := make([]Point, 0, len(xDomain))
		for _, x := range xDomain {
			v, ok := values[k][x]
			if !ok {
				if !fillZero {
					continue
				}
				v = 0
			}
			points = append(points, Point{X: x, Y: v})
		}
		series = append(series, Series{Key: k, Points: points, Secondary: secondary})

		// Stacked totals count observations only; forecast bounds and
		// trend lines would double the total.
		if ParseForecastContext(k).Variant == Observation {
			for _, p := range points {
				totals[p.X] += p.Y
			}
		}
	}

	return extraction{series: series, xDomain: xDomain, totals: totals}
}

// xValue normalizes the x cell: temporal columns become time.Time so
// they key and sort consistently whatever the wire representation was.
func xValue(rec chartdata.DataRecord, xCol string, temporal bool) any {
	v, ok := rec[xCol]
	if !ok || v == nil {
		return nil
	}
	if temporal {
		if t := rec.Time(xCol); !t.IsZero() {
			return t
		}
	}
	switch n := v.(type) {
	case float64, string, int, int64, bool:
		return n
	default:
		return rec.String(xCol)
	}
}

// ============================================================================
// SERIES SORTING
// ============================================================================

// Sort modes for the extracted series list.
const (
	SortNone  = ""
	SortName  = "name"
	SortSum   = "sum"
	SortFinal = "value" // by the series' final value
)

func sortExtracted(series []Series, sortBy string, ascending bool) {
	if sortBy == SortNone {
		return
	}
	key := func(s Series) float64 {
		switch sortBy {
		case SortSum:
			var t float64
			for _, p := range s.Points {
				t += p.Y
			}
			return t
		default:
			if len(s.Points) == 0 {
				return math.Inf(-1)
			}
			return s.Points[len(s.Points)-1].Y
		}
	}

	sort.SliceStable(series, func(i, j int) bool {
		if sortBy == SortName {
			if ascending {
				return strings.ToLower(series[i].Key) < strings.ToLower(series[j].Key)
			}
			return strings.ToLower(series[i].Key) > strings.ToLower(series[j].Key)
		}
		if ascending {
			return key(series[i]) < key(series[j])
		}
		return key(series[i]) > key(series[j])
	})
}

// ============================================================================
// CONTRIBUTION & LABEL SUPPRESSION
// ============================================================================

// applyContribution normalizes every observation point to its share of
// the per-x stacked total. Forecast bounds keep raw values. The totals
// map follows the normalized values: every nonzero column sums to one
// afterwards.
func applyContribution(ext *extraction) {
	for si := range ext.series {
		if ParseForecastContext(ext.series[si].Key).Variant != Observation {
			continue
		}
		for pi := range ext.series[si].Points {
			p := &ext.series[si].Points[pi]
			if total := ext.totals[p.X]; total != 0 {
				p.Y = p.Y / total
			}
		}
	}
	for x, total := range ext.totals {
		if total != 0 {
			ext.totals[x] = 1
		}
	}
}

// hiddenLabelIndexes computes, per series key, the point indexes whose
// value label is suppressed because the point's share of the stacked
// total falls below the percentage threshold.
func hiddenLabelIndexes(ext extraction, threshold float64) map[string]map[int]bool {
	hidden := make(map[string]map[int]bool)
	if threshold <= 0 {
		return hidden
	}
	for _, s := range ext.series {
		for i, p := range s.Points {
			total := ext.totals[p.X]
			if total == 0 {
				continue
			}
			if math.Abs(p.Y)/math.Abs(total)*100 < threshold {
				if hidden[s.Key] == nil {
					hidden[s.Key] = make(map[int]bool)
				}
				hidden[s.Key][i] = true
			}
		}
	}
	return hidden
}

// topStackedKey returns the key of the topmost stacked series: the one
// whose labels survive when only-total labeling is on.
func topStackedKey(series []Series) string {
	for i := len(series) - 1; i >= 0; i-- {
		if ParseForecastContext(series[i].Key).Variant == Observation {
			return series[i].Key
		}
	}
	return ""
}
