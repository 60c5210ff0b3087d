package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/chartform/echarts"
)

// ============================================================================
// SERIES EXPORT — Emitted series → CSV / XLSX
// ============================================================================
// Flattens the emitted series back into a table (one x column, one
// column per series) ready for Sheets/Excel. Carrier series without
// data points (interval/event annotation hosts) are skipped.
// ============================================================================

// SeriesTable flattens series into a header row and data rows, ordered
// by first appearance of each x value.
func SeriesTable(series []*echarts.Series) ([]string, [][]string) {
	header := []string{"x"}
	var xOrder []any
	seenX := make(map[any]bool)
	cols := make([]map[any]float64, 0, len(series))

	for _, s := range series {
		if len(s.Data) == 0 {
			continue
		}
		header = append(header, s.Name)
		col := make(map[any]float64, len(s.Data))
		for _, pair := range s.Data {
			if len(pair) < 2 {
				continue
			}
			x := normalizeX(pair[0])
			y, ok := pair[1].(float64)
			if !ok {
				continue
			}
			if !seenX[x] {
				seenX[x] = true
				xOrder = append(xOrder, x)
			}
			col[x] = y
		}
		cols = append(cols, col)
	}

	rows := make([][]string, 0, len(xOrder))
	for _, x := range xOrder {
		row := make([]string, 0, len(header))
		row = append(row, xString(x))
		for _, col := range cols {
			if v, ok := col[x]; ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}

// WriteSeriesCSV writes the flattened series table as CSV.
func WriteSeriesCSV(w io.Writer, series []*echarts.Series) error {
	header, rows := SeriesTable(series)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesXLSX writes the flattened series table as an XLSX
// workbook with a single sheet.
func WriteSeriesXLSX(w io.Writer, series []*echarts.Series) error {
	header, rows := SeriesTable(series)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for c, name := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			// Numeric cells stay numeric in the workbook.
			if c > 0 && val != "" {
				if num, err := strconv.ParseFloat(val, 64); err == nil {
					if err := f.SetCellValue(sheet, cell, num); err != nil {
						return err
					}
					continue
				}
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write XLSX: %w", err)
	}
	return nil
}

// normalizeX keys time values consistently whatever their zone.
func normalizeX(x any) any {
	if t, ok := x.(time.Time); ok {
		return t.UTC()
	}
	return x
}

func xString(x any) string {
	switch v := x.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
