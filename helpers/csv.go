package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spektr-org/chartform/chartdata"
)

// ============================================================================
// CSV HELPER — Parses CSV data into a chartdata.QueryResult
// ============================================================================
// Consumers read the CSV from wherever it lives (file, S3, Sheets).
// This helper converts the raw bytes into query-result records and
// infers column types so the transform can resolve the x axis.
// ============================================================================

// ParseQueryCSV parses CSV bytes into a QueryResult. The first row is
// the header; numeric cells become float64, everything else stays a
// string. Column types are inferred from the parsed records.
func ParseQueryCSV(data []byte) (chartdata.QueryResult, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return chartdata.QueryResult{}, fmt.Errorf("read CSV headers: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var records []chartdata.DataRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := make(chartdata.DataRecord, len(headers))
		for i, val := range row {
			if i >= len(headers) {
				break
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				rec[headers[i]] = f
			} else {
				rec[headers[i]] = val
			}
		}
		records = append(records, rec)
	}

	return chartdata.QueryResult{
		Data:     records,
		ColTypes: chartdata.InferColTypes(records),
	}, nil
}

// ReadQueryCSV is ParseQueryCSV over a reader.
func ReadQueryCSV(r io.Reader) (chartdata.QueryResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return chartdata.QueryResult{}, fmt.Errorf("read CSV: %w", err)
	}
	return ParseQueryCSV(data)
}
