package chartdata

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// CHARTDATA TYPES — Query Result Data Model
// ============================================================================
// A QueryResult is what the query layer hands to the transform: ordered
// tabular records, a label map (display series key → raw dimension
// values), and column type metadata. Immutable once produced.
// ============================================================================

// GenericDataType classifies a result column.
type GenericDataType int

const (
	TypeNumeric GenericDataType = iota
	TypeString
	TypeTemporal
	TypeBoolean
)

// String returns the wire name of a data type.
func (t GenericDataType) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeTemporal:
		return "temporal"
	case TypeBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// ParseDataType converts a wire name back into a GenericDataType.
// Unknown names fall back to string.
func ParseDataType(s string) GenericDataType {
	switch s {
	case "numeric":
		return TypeNumeric
	case "temporal":
		return TypeTemporal
	case "boolean":
		return TypeBoolean
	default:
		return TypeString
	}
}

// MarshalJSON emits the wire name.
func (t GenericDataType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts either the wire name or a bare enum number.
func (t *GenericDataType) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if n, err := strconv.Atoi(s); err == nil {
		*t = GenericDataType(n)
		return nil
	}
	*t = ParseDataType(s)
	return nil
}

// DataRecord is a single result row: column name → scalar value.
type DataRecord map[string]any

// LabelMap maps a display series key to the ordered list of raw
// dimension values that produced it.
type LabelMap map[string][]string

// QueryResult is one query slot's output (primary "A" or secondary "B").
type QueryResult struct {
	Data     []DataRecord               `json:"data"`
	LabelMap LabelMap                   `json:"label_map,omitempty"`
	ColTypes map[string]GenericDataType `json:"coltypes,omitempty"`

	// VerboseMap resolves human-readable column aliases back to the
	// underlying names ("Sum of Sales" → "sales").
	VerboseMap map[string]string `json:"verbose_map,omitempty"`
}

// ColNames returns the columns present in the first record.
// Record iteration order is not stable; callers needing order should
// use the label map.
func (q QueryResult) ColNames() []string {
	if len(q.Data) == 0 {
		return nil
	}
	names := make([]string, 0, len(q.Data[0]))
	for k := range q.Data[0] {
		names = append(names, k)
	}
	return names
}

// IsTemporal reports whether a column is declared temporal.
func (q QueryResult) IsTemporal(col string) bool {
	return q.ColTypes[col] == TypeTemporal
}

// ============================================================================
// VALUE COERCION
// ============================================================================

// Float coerces a record value to float64. Missing or non-numeric
// values yield NaN so callers can distinguish "absent" from zero.
func (r DataRecord) Float(col string) float64 {
	v, ok := r[col]
	if !ok || v == nil {
		return math.NaN()
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// String coerces a record value to its string form.
func (r DataRecord) String(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.Format(time.RFC3339)
	}
	return ""
}

// Time coerces a record value to a time.Time. Accepts time.Time,
// epoch milliseconds, and common date strings. Returns the zero time
// when the value cannot be interpreted.
func (r DataRecord) Time(col string) time.Time {
	v, ok := r[col]
	if !ok || v == nil {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case float64:
		return fromEpochMillis(int64(t))
	case int64:
		return fromEpochMillis(t)
	case int:
		return fromEpochMillis(int64(t))
	case string:
		return ParseTime(t)
	}
	return time.Time{}
}

func fromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"Jan-2006",
	"2006",
}

// ParseTime tries the layouts the query layer is known to emit.
func ParseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
