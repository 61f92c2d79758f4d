package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var rootEndpoints = map[string]string{
	"extract":     "/api/extract (POST)",
	"saveEvent":   "/api/saveEvent (POST)",
	"events":      "/api/events (GET)",
	"deleteEvent": "/api/events/{id} (DELETE)",
	"clearEvents": "/api/events/clear (POST)",
	"exportIcs":   "/api/export/ics (GET)",
	"exportCsv":   "/api/export/csv (GET)",
	"exportPdf":   "/api/export/pdf (GET)",
	"googleAuth":  "/api/auth/google (GET)",
}

// Root godoc
// @Summary API index
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Orbit Backend API",
		"endpoints": rootEndpoints,
	})
}
