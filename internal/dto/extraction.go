package dto

import "github.com/noah-isme/orbit-api/internal/models"

// ExtractRequest is the payload of POST /api/extract.
type ExtractRequest struct {
	Snippet string  `json:"snippet"`
	Title   string  `json:"title"`
	URL     *string `json:"url"`
}

// ExtractResponse lists detected events; it holds zero or one entry per request.
type ExtractResponse struct {
	Detected []models.ExtractionResult `json:"detected"`
}
