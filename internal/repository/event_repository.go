package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/orbit-api/internal/models"
)

const eventColumns = "id, title, event_date, event_time, tag, confidence, source_snippet, url, created_at"

const createEventsTable = `CREATE TABLE IF NOT EXISTS events (
	id VARCHAR(36) PRIMARY KEY,
	title VARCHAR(255) NOT NULL DEFAULT '',
	event_date VARCHAR(255),
	event_time VARCHAR(255),
	tag VARCHAR(255),
	confidence DOUBLE PRECISION,
	source_snippet VARCHAR(2000),
	url VARCHAR(2048),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EventRepository persists events in PostgreSQL.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EnsureSchema creates the events table when missing.
func (r *EventRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEventsTable); err != nil {
		return fmt.Errorf("ensure events schema: %w", err)
	}
	return nil
}

// List returns every stored event in insertion order.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events ORDER BY created_at ASC, id ASC", eventColumns)
	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Create inserts an event, assigning its id and creation time.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()
	query := `INSERT INTO events (id, title, event_date, event_time, tag, confidence, source_snippet, url, created_at)
VALUES (:id, :title, :event_date, :event_time, :tag, :confidence, :source_snippet, :url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Delete removes one event and reports whether it existed.
func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete event rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteAll removes every event and returns how many were deleted.
func (r *EventRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events")
	if err != nil {
		return 0, fmt.Errorf("clear events: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear events rows affected: %w", err)
	}
	return affected, nil
}
