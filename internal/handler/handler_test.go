package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/orbit-api/internal/dto"
	"github.com/noah-isme/orbit-api/internal/models"
	"github.com/noah-isme/orbit-api/internal/service"
	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
	corsmiddleware "github.com/noah-isme/orbit-api/pkg/middleware/cors"
)

type eventServiceMock struct {
	events   []models.Event
	saved    *dto.SaveEventRequest
	failList error
}

func (m *eventServiceMock) List(ctx context.Context) ([]models.Event, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	return m.events, nil
}

func (m *eventServiceMock) Save(ctx context.Context, req dto.SaveEventRequest) (*models.Event, error) {
	m.saved = &req
	event := models.Event{ID: "generated-id", Title: req.Title, Date: req.Date}
	m.events = append(m.events, event)
	return &event, nil
}

func (m *eventServiceMock) Delete(ctx context.Context, id string) error {
	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "event not found")
}

func (m *eventServiceMock) Clear(ctx context.Context) (*dto.ClearEventsResponse, error) {
	n := int64(len(m.events))
	m.events = nil
	return &dto.ClearEventsResponse{Success: true, Message: "Cleared", Count: n}, nil
}

type extractionServiceMock struct {
	lastReq dto.ExtractRequest
	resp    dto.ExtractResponse
}

func (m *extractionServiceMock) Detect(ctx context.Context, req dto.ExtractRequest) dto.ExtractResponse {
	m.lastReq = req
	return m.resp
}

type exportServiceMock struct{}

func (exportServiceMock) Export(ctx context.Context, format string) (*service.ExportFile, error) {
	if format != service.ExportFormatICS {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &service.ExportFile{
		Filename:    "orbit-events.ics",
		ContentType: "text/calendar",
		Body:        []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
	}, nil
}

type oauthServiceMock struct{}

func (oauthServiceMock) AuthURL() (string, error) {
	return "https://accounts.google.com/o/oauth2/auth?state=abc", nil
}

func (oauthServiceMock) Callback(ctx context.Context, code, state string) (string, error) {
	if state != "abc" {
		return "", appErrors.Clone(appErrors.ErrInvalidState, "invalid oauth state")
	}
	return "/auth-success.html", nil
}

type testRouter struct {
	engine     *gin.Engine
	events     *eventServiceMock
	extraction *extractionServiceMock
}

func newTestRouter() *testRouter {
	gin.SetMode(gin.TestMode)
	events := &eventServiceMock{}
	extraction := &extractionServiceMock{resp: dto.ExtractResponse{Detected: []models.ExtractionResult{}}}
	r := gin.New()
	RegisterRoutes(r, Handlers{
		Events:     NewEventHandler(events),
		Extraction: NewExtractionHandler(extraction),
		Export:     NewExportHandler(exportServiceMock{}),
		Auth:       NewAuthHandler(oauthServiceMock{}),
		Metrics:    NewMetricsHandler(nil),
	}, corsmiddleware.New(nil))
	return &testRouter{engine: r, events: events, extraction: extraction}
}

func (tr *testRouter) do(method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tr.engine.ServeHTTP(w, req)
	return w
}

func TestRootListsEndpoints(t *testing.T) {
	w := newTestRouter().do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "Orbit Backend API", payload["message"])
	assert.Contains(t, payload["endpoints"], "extract")
}

func TestListEventsReturnsRawArray(t *testing.T) {
	w := newTestRouter().do(http.MethodGet, "/api/events", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListEventsError(t *testing.T) {
	tr := newTestRouter()
	tr.events.failList = appErrors.ErrInternal

	w := tr.do(http.MethodGet, "/api/events", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
}

func TestSaveEventIgnoresClientID(t *testing.T) {
	tr := newTestRouter()

	w := tr.do(http.MethodPost, "/api/saveEvent", []byte(`{"id":"client-id","title":"Exam","date":"2024-03-15"}`))

	require.Equal(t, http.StatusOK, w.Code)
	var saved models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "generated-id", saved.ID)
	assert.Equal(t, "Exam", saved.Title)
	require.NotNil(t, tr.events.saved)
}

func TestSaveEventRejectsMalformedJSON(t *testing.T) {
	w := newTestRouter().do(http.MethodPost, "/api/saveEvent", []byte(`{`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEvent(t *testing.T) {
	tr := newTestRouter()
	tr.events.events = []models.Event{{ID: "e1"}}

	w := tr.do(http.MethodDelete, "/api/events/e1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = tr.do(http.MethodDelete, "/api/events/e1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "event not found")
}

func TestClearEventsThenListIsEmpty(t *testing.T) {
	tr := newTestRouter()
	tr.events.events = []models.Event{{ID: "a"}, {ID: "b"}}

	w := tr.do(http.MethodPost, "/api/events/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Cleared","count":2}`, w.Body.String())

	w = tr.do(http.MethodGet, "/api/events", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestExtractReturnsDetectedAtTopLevel(t *testing.T) {
	tr := newTestRouter()
	date := "2024-03-15"
	tr.extraction.resp = dto.ExtractResponse{Detected: []models.ExtractionResult{
		{Title: "Exam", Date: &date, Tag: "Event", Confidence: 0.7, Source: models.ExtractionSourceFallback},
	}}

	w := tr.do(http.MethodPost, "/api/extract", []byte(`{"snippet":"Exam 2024-03-15","title":"Course","url":"https://x.test"}`))

	require.Equal(t, http.StatusOK, w.Code)
	var payload dto.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload.Detected, 1)
	assert.Equal(t, "2024-03-15", *payload.Detected[0].Date)
	assert.Equal(t, "Course", tr.extraction.lastReq.Title)
	require.NotNil(t, tr.extraction.lastReq.URL)
	assert.Equal(t, "https://x.test", *tr.extraction.lastReq.URL)
}

func TestExtractEmptyDetectionIsArray(t *testing.T) {
	w := newTestRouter().do(http.MethodPost, "/api/extract", []byte(`{"snippet":""}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detected":[]}`, w.Body.String())
}

func TestExportICSHeaders(t *testing.T) {
	w := newTestRouter().do(http.MethodGet, "/api/export/ics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="orbit-events.ics"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
}

func TestAuthRedirects(t *testing.T) {
	tr := newTestRouter()

	w := tr.do(http.MethodGet, "/api/auth/google", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "accounts.google.com")

	w = tr.do(http.MethodGet, "/api/auth/google/callback?code=c&state=abc", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth-success.html", w.Header().Get("Location"))

	w = tr.do(http.MethodGet, "/api/auth/google/callback?code=c&state=forged", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreflightIsAnsweredUnderAPI(t *testing.T) {
	tr := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/saveEvent", nil)
	req.Header.Set("Origin", "chrome-extension://abc")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	tr.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "content-type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestHealthAndDisabledMetrics(t *testing.T) {
	tr := newTestRouter()

	w := tr.do(http.MethodGet, "/health", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, c.Writer.Status())
}
