package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/orbit-api/internal/service"
	"github.com/noah-isme/orbit-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, format string) (*service.ExportFile, error)
}

// ExportHandler serves event downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// ICS godoc
// @Summary Download events as iCalendar
// @Tags Export
// @Produce text/calendar
// @Success 200 {file} file
// @Router /api/export/ics [get]
func (h *ExportHandler) ICS(c *gin.Context) {
	h.serve(c, service.ExportFormatICS)
}

// CSV godoc
// @Summary Download events as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} file
// @Router /api/export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	h.serve(c, service.ExportFormatCSV)
}

// PDF godoc
// @Summary Download events as a PDF agenda
// @Tags Export
// @Produce application/pdf
// @Success 200 {file} file
// @Router /api/export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.serve(c, service.ExportFormatPDF)
}

func (h *ExportHandler) serve(c *gin.Context, format string) {
	file, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
