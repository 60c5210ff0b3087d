package chartdata

import (
	"math"
	"strconv"
)

// ============================================================================
// COLUMN TYPE INFERENCE — Heuristic classification of result columns
// ============================================================================
// Used when a result arrives without coltype metadata (CSV ingestion,
// ad-hoc callers). Samples values per column:
//   numeric  — every sampled value parses as a number
//   temporal — every sampled value parses as a known date layout or
//              looks like epoch millis
//   boolean  — every sampled value is true/false
//   string   — everything else
// Empty values are ignored during sampling; an all-empty column is a
// string column.
// ============================================================================

const inferSampleSize = 1000

// InferColTypes classifies every column present in the records.
func InferColTypes(records []DataRecord) map[string]GenericDataType {
	types := make(map[string]GenericDataType)
	if len(records) == 0 {
		return types
	}

	limit := len(records)
	if limit > inferSampleSize {
		limit = inferSampleSize
	}

	cols := make(map[string]bool)
	for i := 0; i < limit; i++ {
		for k := range records[i] {
			cols[k] = true
		}
	}

	for col := range cols {
		types[col] = inferColumn(records[:limit], col)
	}
	return types
}

func inferColumn(records []DataRecord, col string) GenericDataType {
	sawValue := false
	numeric, temporal, boolean := true, true, true

	for _, rec := range records {
		v, ok := rec[col]
		if !ok || v == nil {
			continue
		}
		s := rec.String(col)
		if s == "" {
			continue
		}
		sawValue = true

		if boolean && s != "true" && s != "false" {
			boolean = false
		}
		if numeric {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				numeric = false
			}
		}
		if temporal && !looksTemporal(v, s) {
			temporal = false
		}
		if !numeric && !temporal && !boolean {
			return TypeString
		}
	}

	if !sawValue {
		return TypeString
	}
	switch {
	case boolean:
		return TypeBoolean
	case temporal:
		return TypeTemporal
	case numeric:
		return TypeNumeric
	default:
		return TypeString
	}
}

// looksTemporal accepts parseable date strings and plausible epoch
// millisecond values (2001–2286 when read as millis).
func looksTemporal(v any, s string) bool {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f >= 1e12 && f < 1e13 && f == math.Trunc(f)
	}
	return !ParseTime(s).IsZero()
}
