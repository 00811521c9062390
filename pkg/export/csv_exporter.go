package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Sheet is a printable table, such as the agenda of one day.
type Sheet struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
	// Muted marks rows rendered de-emphasised (closed or booked slots).
	Muted []bool
}

func (s Sheet) muted(i int) bool {
	return i < len(s.Muted) && s.Muted[i]
}

// CSVExporter renders sheets as CSV.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render writes the header row followed by every data row. Short rows are padded.
func (e *CSVExporter) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(sheet.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range sheet.Rows {
		record := make([]string, len(sheet.Headers))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
