package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/orbit-api/internal/models"
	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
	"github.com/noah-isme/orbit-api/pkg/export"
)

// Export formats.
const (
	ExportFormatICS = "ics"
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

const exportBaseName = "orbit-events"

var exportContentTypes = map[string]string{
	ExportFormatICS: "text/calendar",
	ExportFormatCSV: "text/csv",
	ExportFormatPDF: "application/pdf",
}

type eventLister interface {
	List(ctx context.Context) ([]models.Event, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders stored events into downloadable files.
type ExportService struct {
	events eventLister
	ics    *export.ICSExporter
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService wires exporters. Nil exporters get defaults.
func NewExportService(events eventLister, logger *zap.Logger, ics *export.ICSExporter, csv *export.CSVExporter, pdf *export.PDFExporter) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ics == nil {
		ics = export.NewICSExporter()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{events: events, ics: ics, csv: csv, pdf: pdf, logger: logger}
}

// Export renders every stored event in the requested format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events for export")
	}

	var body []byte
	switch format {
	case ExportFormatICS:
		body = s.ics.Render(events)
	case ExportFormatCSV:
		body, err = s.csv.Render(events)
	case ExportFormatPDF:
		body, err = s.pdf.Render(events, "Orbit events")
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    exportBaseName + "." + format,
		ContentType: contentType,
		Body:        body,
	}, nil
}
