package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/models"
)

// UserHandler serves account profile endpoints.
type UserHandler struct {
	repo UserRepository
	log  *logrus.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(repo UserRepository, log *logrus.Logger) *UserHandler {
	return &UserHandler{repo: repo, log: log}
}

// integrationsRequest is the body for PUT /api/v1/user/integrations.
type integrationsRequest struct {
	ImmichAPIURL  string `json:"immich_api_url"`
	ImmichAPIKey  string `json:"immich_api_key"`
	WeatherAPIKey string `json:"weather_api_key"`
}

// Get handles GET /api/v1/user. Integration keys are never echoed back.
func (h *UserHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	user, err := h.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")

			return
		}

		h.log.WithError(err).Error("getting user")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateIntegrations handles PUT /api/v1/user/integrations.
func (h *UserHandler) UpdateIntegrations(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	var req integrationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	err := h.repo.UpdateIntegrationKeys(c.Request.Context(), userID, req.ImmichAPIURL, req.ImmichAPIKey, req.WeatherAPIKey)
	if err != nil {
		h.log.WithError(err).Error("updating integration keys")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
