package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Events     *EventHandler
	Extraction *ExtractionHandler
	Export     *ExportHandler
	Auth       *AuthHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts the public routes. apiMiddleware only applies under /api.
func RegisterRoutes(r *gin.Engine, h Handlers, apiMiddleware ...gin.HandlerFunc) {
	r.GET("/", Root)
	r.GET("/health", h.Metrics.Health)

	api := r.Group("/api", apiMiddleware...)
	// Preflight requests need a matching route for group middleware to run.
	api.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	api.GET("/events", h.Events.List)
	api.POST("/saveEvent", h.Events.Save)
	api.DELETE("/events/:id", h.Events.Delete)
	api.POST("/events/clear", h.Events.Clear)

	api.POST("/extract", h.Extraction.Extract)

	api.GET("/export/ics", h.Export.ICS)
	api.GET("/export/csv", h.Export.CSV)
	api.GET("/export/pdf", h.Export.PDF)

	api.GET("/auth/google", h.Auth.Google)
	api.GET("/auth/google/callback", h.Auth.Callback)
}
