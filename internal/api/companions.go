package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/models"
)

// CompanionHandler serves travel companion endpoints.
type CompanionHandler struct {
	repo CompanionRepository
	log  *logrus.Logger
}

// NewCompanionHandler creates a CompanionHandler.
func NewCompanionHandler(repo CompanionRepository, log *logrus.Logger) *CompanionHandler {
	return &CompanionHandler{repo: repo, log: log}
}

// List handles GET /api/v1/companions.
func (h *CompanionHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	companions, err := h.repo.ListCompanions(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("listing companions")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if companions == nil {
		companions = []models.Companion{}
	}

	c.JSON(http.StatusOK, gin.H{"companions": companions})
}

// Create handles POST /api/v1/companions.
func (h *CompanionHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	var req models.CreateCompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	companion, err := h.repo.CreateCompanion(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "companion name already exists")
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("creating companion")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusCreated, companion)
}

// Delete handles DELETE /api/v1/companions/:id.
func (h *CompanionHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	companionID := parseIDParam(c, "id")
	if companionID == 0 {
		return
	}

	if err := h.repo.DeleteCompanion(c.Request.Context(), userID, companionID); err != nil {
		if errors.Is(err, models.ErrCompanionNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "companion not found")

			return
		}

		h.log.WithError(err).Error("deleting companion")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}
