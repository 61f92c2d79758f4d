package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresKeysAndNumberForms(t *testing.T) {
	a := []byte(`[{"id":"uuid-1","title":"Exam","confidence":1,"createdAt":"2024-01-01T00:00:00Z"}]`)
	b := []byte(`[{"id":7,"title":"Exam","confidence":1.0}]`)

	assert.True(t, bodiesEqual(a, b, []string{"id", "createdAt"}))
	assert.False(t, bodiesEqual(a, b, []string{"id"}))
}

func TestBodiesEqualCalendarSkipsUIDs(t *testing.T) {
	a := []byte("BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nUID:one\r\nSUMMARY:Exam\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n")
	b := []byte("BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nUID:two\r\nSUMMARY:Exam\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n")
	c := bytes.Replace(b, []byte("Exam"), []byte("Quiz"), 1)

	assert.True(t, bodiesEqual(a, b, nil))
	assert.False(t, bodiesEqual(a, c, nil))
}

func TestCompareTargetSendsBody(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"detected":[]}`))
	}))
	defer server.Close()

	tgt := target{Method: "post", Path: "api/extract", Body: json.RawMessage(`{"snippet":"x"}`), Critical: true}
	comp := compareTarget(server.Client(), server.URL, server.URL, tgt)

	require.NoError(t, comp.Error)
	assert.True(t, comp.StatusMatch)
	assert.True(t, comp.BodyMatch)
	assert.Equal(t, "x", received["snippet"])
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, []comparison{{Target: target{Method: "GET", Path: "/api/events"}, GoStatus: 200, LegacyStatus: 500}})

	assert.Contains(t, buf.String(), "[DIFF] GET /api/events")
}
