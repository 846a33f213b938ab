package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/models"
)

// TripHandler serves trip CRUD endpoints.
type TripHandler struct {
	repo TripRepository
	log  *logrus.Logger
}

// NewTripHandler creates a TripHandler.
func NewTripHandler(repo TripRepository, log *logrus.Logger) *TripHandler {
	return &TripHandler{repo: repo, log: log}
}

// List handles GET /api/v1/trips.
func (h *TripHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseOffset(c.Query("offset"))
	status := c.Query("status")

	trips, hasMore, err := h.repo.ListTrips(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		h.log.WithError(err).Error("listing trips")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if trips == nil {
		trips = []models.Trip{}
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips, "has_more": hasMore})
}

// Get handles GET /api/v1/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	tripID := parseIDParam(c, "id")
	if tripID == 0 {
		return
	}

	trip, err := h.repo.GetTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "trip not found")

			return
		}

		h.log.WithError(err).Error("getting trip")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, trip)
}

// Create handles POST /api/v1/trips.
func (h *TripHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	trip, err := h.repo.CreateTrip(c.Request.Context(), userID, req)
	if err != nil {
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		h.log.WithError(err).Error("creating trip")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, trip)
}

// Update handles PUT /api/v1/trips/:id.
func (h *TripHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	tripID := parseIDParam(c, "id")
	if tripID == 0 {
		return
	}

	var req models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	trip, err := h.repo.UpdateTrip(c.Request.Context(), userID, tripID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTripNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "trip not found")
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("updating trip")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, trip)
}

// Delete handles DELETE /api/v1/trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	tripID := parseIDParam(c, "id")
	if tripID == 0 {
		return
	}

	if err := h.repo.DeleteTrip(c.Request.Context(), userID, tripID); err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "trip not found")

			return
		}

		h.log.WithError(err).Error("deleting trip")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}

// isValidationError reports whether err is one of the request validation
// sentinels that map to a 400 response.
func isValidationError(err error) bool {
	return errors.Is(err, models.ErrMissingTitle) ||
		errors.Is(err, models.ErrMissingName) ||
		errors.Is(err, models.ErrInvalidStatus) ||
		errors.Is(err, models.ErrInvalidDates) ||
		models.IsFieldTooLong(err)
}
