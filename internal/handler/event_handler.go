package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/orbit-api/internal/dto"
	"github.com/noah-isme/orbit-api/internal/models"
	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
	"github.com/noah-isme/orbit-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Save(ctx context.Context, req dto.SaveEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (*dto.ClearEventsResponse, error)
}

// EventHandler exposes saved event endpoints.
type EventHandler struct {
	service eventService
}

// NewEventHandler constructs an event handler.
func NewEventHandler(svc eventService) *EventHandler {
	return &EventHandler{service: svc}
}

// List godoc
// @Summary List saved events
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Router /api/events [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	response.Raw(c, http.StatusOK, events)
}

// Save godoc
// @Summary Save an event
// @Description Stores an event. Any id in the payload is ignored.
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.SaveEventRequest true "Event payload"
// @Success 200 {object} models.Event
// @Failure 400 {object} response.Envelope
// @Router /api/saveEvent [post]
func (h *EventHandler) Save(c *gin.Context) {
	var req dto.SaveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	event, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /api/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear godoc
// @Summary Delete every saved event
// @Tags Events
// @Produce json
// @Success 200 {object} dto.ClearEventsResponse
// @Router /api/events/clear [post]
func (h *EventHandler) Clear(c *gin.Context) {
	result, err := h.service.Clear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, result)
}
