package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/orbit-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorEnvelope(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.Clone(appErrors.ErrNotFound, "event not found"))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "event not found", body.Error.Message)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Len(t, c.Errors, 1)
}

func TestRawSkipsEnvelope(t *testing.T) {
	c, w := newContext()
	Raw(c, http.StatusOK, gin.H{"detected": []string{}})
	assert.JSONEq(t, `{"detected":[]}`, w.Body.String())
}

func TestAttachmentHeaders(t *testing.T) {
	c, w := newContext()
	Attachment(c, "orbit-events.ics", "text/calendar", []byte("BEGIN:VCALENDAR\r\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="orbit-events.ics"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/calendar", w.Header().Get("Content-Type"))
	assert.Equal(t, "BEGIN:VCALENDAR\r\n", w.Body.String())
}
