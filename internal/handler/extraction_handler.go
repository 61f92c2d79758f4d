package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/orbit-api/internal/dto"
	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
	"github.com/noah-isme/orbit-api/pkg/response"
)

type extractionService interface {
	Detect(ctx context.Context, req dto.ExtractRequest) dto.ExtractResponse
}

// ExtractionHandler exposes event detection.
type ExtractionHandler struct {
	service extractionService
}

// NewExtractionHandler constructs an extraction handler.
func NewExtractionHandler(svc extractionService) *ExtractionHandler {
	return &ExtractionHandler{service: svc}
}

// Extract godoc
// @Summary Detect an event in free text
// @Description Returns zero or one detected events. Upstream model failures fall back to pattern matching and are never reported.
// @Tags Extraction
// @Accept json
// @Produce json
// @Param payload body dto.ExtractRequest true "Snippet to analyse"
// @Success 200 {object} dto.ExtractResponse
// @Failure 400 {object} response.Envelope
// @Router /api/extract [post]
func (h *ExtractionHandler) Extract(c *gin.Context) {
	var req dto.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	response.Raw(c, http.StatusOK, h.service.Detect(c.Request.Context(), req))
}
