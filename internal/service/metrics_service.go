package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/orbit-api/internal/models"
)

// MetricsService owns the Prometheus registry for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	extractions     *prometheus.CounterVec
	llmFailures     *prometheus.CounterVec
	llmDuration     prometheus.Histogram
	eventsCleared   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	extractions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orbit_extractions_total",
		Help: "Extraction results by producing path and whether they were surfaced",
	}, []string{"source", "detected"})

	llmFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orbit_llm_failures_total",
		Help: "Text generation failures that degraded to the regex fallback",
	}, []string{"stage"})

	llmDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orbit_llm_request_duration_seconds",
		Help:    "Latency of text generation calls",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
	})

	eventsCleared := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbit_events_cleared_total",
		Help: "Events removed through bulk clear",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, extractions, llmFailures, llmDuration, eventsCleared, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		extractions:     extractions,
		llmFailures:     llmFailures,
		llmDuration:     llmDuration,
		eventsCleared:   eventsCleared,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordExtraction counts a finished extraction.
func (m *MetricsService) RecordExtraction(source models.ExtractionSource, detected bool) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(string(source), strconv.FormatBool(detected)).Inc()
}

// RecordLLMFailure counts a generation failure at the given stage (request or parse).
func (m *MetricsService) RecordLLMFailure(stage string) {
	if m == nil {
		return
	}
	m.llmFailures.WithLabelValues(stage).Inc()
}

// ObserveLLMCall records generation latency.
func (m *MetricsService) ObserveLLMCall(duration time.Duration) {
	if m == nil {
		return
	}
	m.llmDuration.Observe(duration.Seconds())
}

// RecordEventsCleared adds the bulk clear count.
func (m *MetricsService) RecordEventsCleared(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.eventsCleared.Add(float64(count))
}
