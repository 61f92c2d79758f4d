package export

import (
	"bytes"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/noah-isme/orbit-api/internal/models"
)

const (
	// ICSProductID identifies the producer in every exported calendar.
	ICSProductID = "-//Orbit//EN"
	icsVersion   = "2.0"
	icsDateInput = "2006-01-02"
	icsDateValue = "20060102"
	crlf         = "\r\n"
)

// ICSExporter renders stored events as an iCalendar document.
type ICSExporter struct {
	newUID func() string
}

// NewICSExporter builds an exporter that stamps each VEVENT with a fresh random UID.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{newUID: uuid.NewString}
}

// Render writes the calendar in input order. It never fails: an event whose
// date does not parse simply has no DTSTART line.
func (e *ICSExporter) Render(events []models.Event) []byte {
	buf := &bytes.Buffer{}
	writeLine(buf, "BEGIN", string(ical.ComponentVCalendar))
	writeLine(buf, string(ical.PropertyVersion), icsVersion)
	writeLine(buf, string(ical.PropertyProductId), ICSProductID)

	for _, event := range events {
		writeLine(buf, "BEGIN", string(ical.ComponentVEvent))
		writeLine(buf, string(ical.ComponentPropertyUniqueId), e.newUID())
		writeLine(buf, string(ical.ComponentPropertySummary), EscapeICSText(event.Title))
		if start, ok := icsDate(event.Date); ok {
			name := string(ical.ComponentPropertyDtStart) + ";" + string(ical.ParameterValue) + "=" + string(ical.ValueDataTypeDate)
			writeLine(buf, name, start)
		}
		description := ""
		if event.SourceSnippet != nil {
			description = *event.SourceSnippet
		}
		writeLine(buf, string(ical.ComponentPropertyDescription), EscapeICSText(description))
		if event.URL != nil {
			writeLine(buf, string(ical.ComponentPropertyUrl), *event.URL)
		}
		writeLine(buf, "END", string(ical.ComponentVEvent))
	}

	writeLine(buf, "END", string(ical.ComponentVCalendar))
	return buf.Bytes()
}

// EscapeICSText escapes a TEXT value. Substitutions run in sequence and their
// output is not rescanned.
func EscapeICSText(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	return s
}

func icsDate(raw *string) (string, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return "", false
	}
	parsed, err := time.Parse(icsDateInput, *raw)
	if err != nil {
		return "", false
	}
	return parsed.Format(icsDateValue), true
}

func writeLine(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteByte(':')
	buf.WriteString(value)
	buf.WriteString(crlf)
}
