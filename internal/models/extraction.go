package models

// ExtractionSource identifies which path of the extraction chain produced a result.
type ExtractionSource string

const (
	ExtractionSourceLLM      ExtractionSource = "llm"
	ExtractionSourceFallback ExtractionSource = "fallback"
)

// Default values applied when the extraction chain has nothing better.
const (
	DefaultEventTitle = "Untitled Event"
	DefaultEventTag   = "Event"
)

// ExtractionResult is a best-effort guess at an event. It is never persisted;
// the caller decides whether to save it as an Event.
type ExtractionResult struct {
	Title         string           `json:"title"`
	Date          *string          `json:"date"`
	Time          *string          `json:"time"`
	Tag           string           `json:"tag"`
	Description   string           `json:"description"`
	Confidence    float64          `json:"confidence"`
	SourceSnippet string           `json:"sourceSnippet"`
	URL           *string          `json:"url"`
	Source        ExtractionSource `json:"source"`
}
