package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/orbit-api/internal/dto"
	"github.com/noah-isme/orbit-api/internal/llm"
	"github.com/noah-isme/orbit-api/internal/models"
)

const (
	maxTransportSnippet    = 240
	maxFallbackDescription = 200
	defaultLLMConfidence   = 0.8
	minSurfaceConfidence   = 0.3
)

var (
	datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	timePattern = regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?i:am|pm)?\b`)

	errNoJSONObject      = errors.New("no json object in model output")
	errGeneratorDisabled = errors.New("generator disabled")
)

const extractionPrompt = "Extract event information from the following text. Return a JSON object with these fields: " +
	"title (a clear, concise event title), date (YYYY-MM-DD format if found, or null), " +
	"time (HH:MM format if found, or null), tag (one of: Educational, Personal, Event, Work), " +
	"description (a brief description of the event, max 200 characters), " +
	"confidence (0.0 to 1.0 based on how certain you are this is an event). " +
	"Text to analyze:\n\nTitle: %s\nURL: %s\nContent: %s\n\n" +
	"Return ONLY valid JSON, no markdown, no code blocks, just the JSON object."

// ExtractionService turns free text into a best-effort event guess. It asks the
// configured generator first and degrades to regex heuristics on any failure.
type ExtractionService struct {
	generator llm.Generator
	timeout   time.Duration
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewExtractionService builds the service. A nil generator means regex only.
func NewExtractionService(generator llm.Generator, timeout time.Duration, metrics *MetricsService, logger *zap.Logger) *ExtractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractionService{generator: generator, timeout: timeout, metrics: metrics, logger: logger}
}

// Detect runs an extraction and applies the surfacing rule. Detected is never nil.
func (s *ExtractionService) Detect(ctx context.Context, req dto.ExtractRequest) dto.ExtractResponse {
	result, ok := s.Extract(ctx, req.Snippet, req.Title, req.URL)
	resp := dto.ExtractResponse{Detected: []models.ExtractionResult{}}
	if ok {
		resp.Detected = append(resp.Detected, result)
	}
	return resp
}

// Extract never fails. The boolean reports whether the result should be shown
// to the user: confidence above 0.3 or a recognised date.
func (s *ExtractionService) Extract(ctx context.Context, snippet, title string, url *string) (models.ExtractionResult, bool) {
	result, err := s.extractWithGenerator(ctx, snippet, title, url)
	if err != nil {
		result = basicExtraction(snippet, title, url)
	}
	result.SourceSnippet = truncateRunes(snippet, maxTransportSnippet)

	detected := result.Confidence > minSurfaceConfidence || result.Date != nil
	s.metrics.RecordExtraction(result.Source, detected)
	return result, detected
}

func (s *ExtractionService) extractWithGenerator(ctx context.Context, snippet, title string, url *string) (models.ExtractionResult, error) {
	if s.generator == nil {
		return models.ExtractionResult{}, errGeneratorDisabled
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, buildExtractionPrompt(snippet, title, url))
	s.metrics.ObserveLLMCall(time.Since(start))
	if err != nil {
		s.logger.Warn("text generation failed, using regex fallback", zap.Error(err))
		s.metrics.RecordLLMFailure("request")
		return models.ExtractionResult{}, err
	}

	result, err := parseGeneratedEvent(text, title, url)
	if err != nil {
		s.logger.Warn("unusable model output, using regex fallback", zap.Error(err), zap.Int("output_length", len(text)))
		s.metrics.RecordLLMFailure("parse")
		return models.ExtractionResult{}, err
	}
	return result, nil
}

func buildExtractionPrompt(snippet, title string, url *string) string {
	origin := "N/A"
	if url != nil {
		origin = *url
	}
	return fmt.Sprintf(extractionPrompt, title, origin, snippet)
}

// parseGeneratedEvent reads the outermost {...} span of the model output.
func parseGeneratedEvent(text, title string, url *string) (models.ExtractionResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return models.ExtractionResult{}, errNoJSONObject
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &fields); err != nil {
		return models.ExtractionResult{}, fmt.Errorf("decode model json: %w", err)
	}

	result := models.ExtractionResult{
		Title:       defaultTitle(title),
		Tag:         models.DefaultEventTag,
		Confidence:  defaultLLMConfidence,
		URL:         url,
		Source:      models.ExtractionSourceLLM,
		Date:        optionalString(fields["date"]),
		Time:        optionalString(fields["time"]),
		Description: stringField(fields["description"]),
	}
	if v := stringField(fields["title"]); v != "" {
		result.Title = v
	}
	if v := stringField(fields["tag"]); v != "" {
		result.Tag = v
	}
	if v, ok := confidenceField(fields["confidence"]); ok {
		result.Confidence = v
	}
	return result, nil
}

func basicExtraction(snippet, title string, url *string) models.ExtractionResult {
	result := models.ExtractionResult{
		Title:       defaultTitle(title),
		Tag:         models.DefaultEventTag,
		Description: snippet,
		Confidence:  0.5,
		URL:         url,
		Source:      models.ExtractionSourceFallback,
	}
	if match := datePattern.FindString(snippet); match != "" {
		result.Date = &match
		result.Confidence = 0.7
	}
	if match := strings.TrimSpace(timePattern.FindString(snippet)); match != "" {
		result.Time = &match
	}
	if runes := []rune(snippet); len(runes) > maxFallbackDescription {
		result.Description = string(runes[:maxFallbackDescription]) + "..."
	}
	return result
}

func defaultTitle(title string) string {
	if title == "" {
		return models.DefaultEventTitle
	}
	return title
}

func stringField(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func optionalString(v any) *string {
	s := stringField(v)
	if s == "" {
		return nil
	}
	return &s
}

// confidenceField accepts JSON numbers and numeric strings. Non-finite values
// are rejected; finite values are clamped to [0, 1].
func confidenceField(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return math.Max(0, math.Min(1, f)), true
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
