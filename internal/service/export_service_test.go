package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/orbit-api/internal/models"
	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
)

func newExportServiceForTest(store *memoryEventStore) *ExportService {
	return NewExportService(store, nil, nil, nil, nil)
}

func TestExportServiceICS(t *testing.T) {
	store := &memoryEventStore{events: []models.Event{
		{ID: "1", Title: "Exam", Date: strPtr("2024-03-15")},
	}}

	file, err := newExportServiceForTest(store).Export(context.Background(), ExportFormatICS)

	require.NoError(t, err)
	assert.Equal(t, "orbit-events.ics", file.Filename)
	assert.Equal(t, "text/calendar", file.ContentType)
	assert.Contains(t, string(file.Body), "DTSTART;VALUE=DATE:20240315\r\n")
}

func TestExportServiceTabularFormats(t *testing.T) {
	store := &memoryEventStore{events: []models.Event{{ID: "1", Title: "Exam"}}}
	svc := newExportServiceForTest(store)

	csvFile, err := svc.Export(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "orbit-events.csv", csvFile.Filename)
	assert.Contains(t, string(csvFile.Body), "1,Exam")

	pdfFile, err := svc.Export(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdfFile.ContentType)
	assert.True(t, bytes.HasPrefix(pdfFile.Body, []byte("%PDF-")))
}

func TestExportServiceErrors(t *testing.T) {
	_, err := newExportServiceForTest(&memoryEventStore{}).Export(context.Background(), "xlsx")
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	_, err = newExportServiceForTest(&memoryEventStore{err: errors.New("boom")}).Export(context.Background(), ExportFormatICS)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInternal.Code))
}
