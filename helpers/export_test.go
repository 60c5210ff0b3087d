package helpers

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/chartform/echarts"
)

// ============================================================================
// SERIES EXPORT TESTS
// ============================================================================

func exportFixture() []*echarts.Series {
	d1 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	return []*echarts.Series{
		{Name: "apple", Data: [][]any{{d1, 10.0}, {d2, 20.0}}},
		{Name: "banana", Data: [][]any{{d1, 5.0}}},
		{Name: "carrier", Data: [][]any{}}, // annotation host, skipped
	}
}

func TestSeriesTable(t *testing.T) {
	header, rows := SeriesTable(exportFixture())

	assert.Equal(t, []string{"x", "apple", "banana"}, header)

	want := [][]string{
		{"2021-01-01T00:00:00Z", "10", "5"},
		// Missing samples export as empty cells.
		{"2021-01-02T00:00:00Z", "20", ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeriesCSV(&buf, exportFixture()))

	want := "x,apple,banana\n" +
		"2021-01-01T00:00:00Z,10,5\n" +
		"2021-01-02T00:00:00Z,20,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSeriesXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeriesXLSX(&buf, exportFixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	name, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "apple", name)

	val, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "10", val)
}
