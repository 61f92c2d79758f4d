package models

import "time"

// Event is a persisted occurrence saved by the user or accepted from an extraction.
// Date and Time are stored as free text; nothing validates their format.
type Event struct {
	ID            string    `db:"id" gorm:"primaryKey;size:36" json:"id"`
	Title         string    `db:"title" gorm:"size:255" json:"title"`
	Date          *string   `db:"event_date" gorm:"column:event_date;size:255" json:"date"`
	Time          *string   `db:"event_time" gorm:"column:event_time;size:255" json:"time"`
	Tag           *string   `db:"tag" gorm:"size:255" json:"tag"`
	Confidence    *float64  `db:"confidence" json:"confidence"`
	SourceSnippet *string   `db:"source_snippet" gorm:"size:2000" json:"sourceSnippet"`
	URL           *string   `db:"url" gorm:"column:url;size:2048" json:"url"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// TableName pins the gorm table name.
func (Event) TableName() string {
	return "events"
}

// MaxSourceSnippetLength caps the stored snippet, in characters.
const MaxSourceSnippetLength = 2000
