package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/orbit-api/internal/models"
)

// agenda columns: header, width in mm, record index from eventRecord.
var pdfColumns = []struct {
	header string
	width  float64
	index  int
}{
	{"Date", 28, 2},
	{"Time", 22, 3},
	{"Title", 80, 1},
	{"Tag", 30, 4},
	{"Conf.", 17, 5},
}

// PDFExporter renders events as a printable agenda table.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates an A4 agenda with an optional title.
func (e *PDFExporter) Render(events []models.Event, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	if len(events) == 0 {
		pdf.CellFormat(0, 7, "No events saved.", "1", 1, "C", false, 0, "")
	}
	for _, event := range events {
		record := eventRecord(event)
		for _, col := range pdfColumns {
			value := truncateToWidth(pdf, tr(record[col.index]), col.width-2)
			pdf.CellFormat(col.width, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateToWidth(pdf *gofpdf.Fpdf, value string, width float64) string {
	if pdf.GetStringWidth(value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
