package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/orbit-api/pkg/response"
)

type oauthService interface {
	AuthURL() (string, error)
	Callback(ctx context.Context, code, state string) (string, error)
}

// AuthHandler drives the Google consent round trip.
type AuthHandler struct {
	service oauthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc oauthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Google godoc
// @Summary Start Google calendar consent
// @Tags Auth
// @Success 302
// @Router /api/auth/google [get]
func (h *AuthHandler) Google(c *gin.Context) {
	target, err := h.service.AuthURL()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Callback godoc
// @Summary Finish Google calendar consent
// @Tags Auth
// @Param code query string true "Authorization code"
// @Param state query string true "Signed state issued by /api/auth/google"
// @Success 302
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/auth/google/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	target, err := h.service.Callback(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}
