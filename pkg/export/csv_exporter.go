package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/noah-isme/orbit-api/internal/models"
)

// CSVExporter renders events as CSV with a header row.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the events.
func (e *CSVExporter) Render(events []models.Event) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(eventColumns); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, event := range events {
		if err := writer.Write(eventRecord(event)); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", event.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
