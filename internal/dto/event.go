package dto

// SaveEventRequest is the payload of POST /api/saveEvent. Any client-supplied
// id is ignored; the store assigns one.
type SaveEventRequest struct {
	Title         string   `json:"title" validate:"max=255"`
	Date          *string  `json:"date" validate:"omitempty,max=255"`
	Time          *string  `json:"time" validate:"omitempty,max=255"`
	Tag           *string  `json:"tag" validate:"omitempty,max=255"`
	Confidence    *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
	SourceSnippet *string  `json:"sourceSnippet"`
	URL           *string  `json:"url" validate:"omitempty,max=2048"`
}

// ClearEventsResponse reports a bulk delete.
type ClearEventsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
