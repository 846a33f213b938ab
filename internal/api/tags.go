package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/models"
)

// TagHandler serves tag endpoints.
type TagHandler struct {
	repo TagRepository
	log  *logrus.Logger
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(repo TagRepository, log *logrus.Logger) *TagHandler {
	return &TagHandler{repo: repo, log: log}
}

// List handles GET /api/v1/tags.
func (h *TagHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	tags, err := h.repo.ListTags(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("listing tags")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if tags == nil {
		tags = []models.Tag{}
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// Create handles POST /api/v1/tags.
func (h *TagHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	tag, err := h.repo.CreateTag(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateKey):
			respondError(c, http.StatusConflict, ErrCodeConflict, "tag name already exists")
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("creating tag")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusCreated, tag)
}

// Delete handles DELETE /api/v1/tags/:id.
func (h *TagHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	tagID := parseIDParam(c, "id")
	if tagID == 0 {
		return
	}

	if err := h.repo.DeleteTag(c.Request.Context(), userID, tagID); err != nil {
		if errors.Is(err, models.ErrTagNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "tag not found")

			return
		}

		h.log.WithError(err).Error("deleting tag")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Status(http.StatusNoContent)
}
