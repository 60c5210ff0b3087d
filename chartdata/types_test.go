package chartdata

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// DATA MODEL TESTS
// ============================================================================
// Tests cover:
//   1. Value coercion — Float/String/Time across wire representations
//   2. Data type round-trips — wire names and legacy enum numbers
//   3. Time parsing — the layouts the query layer emits
// ============================================================================

func TestDataRecordFloat(t *testing.T) {
	rec := DataRecord{
		"f":    12.5,
		"i":    int(7),
		"i64":  int64(9),
		"s":    "3.25",
		"b":    true,
		"text": "hello",
		"nil":  nil,
	}

	assert.Equal(t, 12.5, rec.Float("f"))
	assert.Equal(t, 7.0, rec.Float("i"))
	assert.Equal(t, 9.0, rec.Float("i64"))
	assert.Equal(t, 3.25, rec.Float("s"))
	assert.Equal(t, 1.0, rec.Float("b"))

	assert.True(t, math.IsNaN(rec.Float("text")))
	assert.True(t, math.IsNaN(rec.Float("nil")))
	assert.True(t, math.IsNaN(rec.Float("missing")))
}

func TestDataRecordString(t *testing.T) {
	rec := DataRecord{
		"s": "abc",
		"f": 3.0,
		"b": false,
	}

	assert.Equal(t, "abc", rec.String("s"))
	assert.Equal(t, "3", rec.String("f"))
	assert.Equal(t, "false", rec.String("b"))
	assert.Equal(t, "", rec.String("missing"))
}

func TestDataRecordTime(t *testing.T) {
	want := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	rec := DataRecord{
		"str":    "2021-03-04",
		"millis": float64(want.UnixMilli()),
		"native": want,
		"junk":   "not a date",
	}

	assert.Equal(t, want, rec.Time("str"))
	assert.Equal(t, want, rec.Time("millis"))
	assert.Equal(t, want, rec.Time("native"))
	assert.True(t, rec.Time("junk").IsZero())
	assert.True(t, rec.Time("missing").IsZero())
}

func TestParseTimeLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2021-03-04T10:30:00Z", time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC)},
		{"2021-03-04 10:30:00", time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC)},
		{"2021-03-04", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"2021-03", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2021", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseTime(c.in), "input %q", c.in)
	}
	assert.True(t, ParseTime("yesterday").IsZero())
}

func TestGenericDataTypeJSON(t *testing.T) {
	out, err := json.Marshal(TypeTemporal)
	require.NoError(t, err)
	assert.Equal(t, `"temporal"`, string(out))

	var byName GenericDataType
	require.NoError(t, json.Unmarshal([]byte(`"numeric"`), &byName))
	assert.Equal(t, TypeNumeric, byName)

	// Older payloads carry the bare enum number.
	var byNumber GenericDataType
	require.NoError(t, json.Unmarshal([]byte(`2`), &byNumber))
	assert.Equal(t, TypeTemporal, byNumber)

	var unknown GenericDataType
	require.NoError(t, json.Unmarshal([]byte(`"mystery"`), &unknown))
	assert.Equal(t, TypeString, unknown)
}

func TestQueryResultIsTemporal(t *testing.T) {
	q := QueryResult{ColTypes: map[string]GenericDataType{"ds": TypeTemporal, "sales": TypeNumeric}}
	assert.True(t, q.IsTemporal("ds"))
	assert.False(t, q.IsTemporal("sales"))
	assert.False(t, q.IsTemporal("missing"))
}
