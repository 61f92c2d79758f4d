package export

import (
	"strconv"

	"github.com/noah-isme/orbit-api/internal/models"
)

// eventColumns is the column order shared by the tabular exporters.
var eventColumns = []string{"id", "title", "date", "time", "tag", "confidence", "url"}

func eventRecord(event models.Event) []string {
	confidence := ""
	if event.Confidence != nil {
		confidence = strconv.FormatFloat(*event.Confidence, 'f', 2, 64)
	}
	return []string{
		event.ID,
		event.Title,
		deref(event.Date),
		deref(event.Time),
		deref(event.Tag),
		confidence,
		deref(event.URL),
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
