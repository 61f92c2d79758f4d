package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/orbit-api/internal/dto"
	"github.com/noah-isme/orbit-api/internal/models"
	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
)

// EventStore is implemented by both the sqlx and gorm repositories.
type EventStore interface {
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// EventService handles saved event workflows.
type EventService struct {
	store     EventStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewEventService creates a new event service instance.
func NewEventService(store EventStore, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{store: store, validator: validate, metrics: metrics, logger: logger}
}

// List returns every stored event, oldest first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// Save stores a new event. The snippet is cut to the storage limit.
func (s *EventService) Save(ctx context.Context, req dto.SaveEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	event := &models.Event{
		Title:      req.Title,
		Date:       req.Date,
		Time:       req.Time,
		Tag:        req.Tag,
		Confidence: req.Confidence,
		URL:        req.URL,
	}
	if req.SourceSnippet != nil {
		snippet := truncateRunes(*req.SourceSnippet, models.MaxSourceSnippetLength)
		event.SourceSnippet = &snippet
	}

	if err := s.store.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save event")
	}
	s.logger.Debug("event saved", zap.String("event_id", event.ID))
	return event, nil
}

// Delete removes a single event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return nil
}

// Clear removes every stored event and reports how many were removed.
func (s *EventService) Clear(ctx context.Context) (*dto.ClearEventsResponse, error) {
	count, err := s.store.DeleteAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear events")
	}
	s.metrics.RecordEventsCleared(count)
	s.logger.Info("events cleared", zap.Int64("count", count))
	return &dto.ClearEventsResponse{
		Success: true,
		Message: fmt.Sprintf("Cleared %d events", count),
		Count:   count,
	}, nil
}
