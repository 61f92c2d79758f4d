package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/orbit-api/internal/models"
)

// GormEventRepository persists events through gorm. It backs the MySQL driver.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository constructs a gorm-backed event repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// EnsureSchema migrates the events table.
func (r *GormEventRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Event{}); err != nil {
		return fmt.Errorf("ensure events schema: %w", err)
	}
	return nil
}

// List returns every stored event in insertion order.
func (r *GormEventRepository) List(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Create inserts an event, assigning its id and creation time.
func (r *GormEventRepository) Create(ctx context.Context, event *models.Event) error {
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Delete removes one event and reports whether it existed.
func (r *GormEventRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if res.Error != nil {
		return false, fmt.Errorf("delete event: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every event and returns how many were deleted.
func (r *GormEventRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Event{})
	if res.Error != nil {
		return 0, fmt.Errorf("clear events: %w", res.Error)
	}
	return res.RowsAffected, nil
}
