package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/metrics"
	"github.com/waylog/waylog/internal/models"
)

// BackupHandler serves backup export and restore endpoints.
type BackupHandler struct {
	repo BackupRepository
	log  *logrus.Logger
}

// NewBackupHandler creates a BackupHandler.
func NewBackupHandler(repo BackupRepository, log *logrus.Logger) *BackupHandler {
	return &BackupHandler{repo: repo, log: log}
}

// restoreRequest is the body for POST /api/v1/backup/restore. The document
// rides inside backupData so restore options can travel alongside it.
type restoreRequest struct {
	BackupData *models.BackupDocument        `json:"backupData" binding:"required"`
	Options    *models.RestoreOptionsRequest `json:"options"`
}

// Create handles POST /api/v1/backup/create.
// Returns the full user export as a JSON file attachment.
func (h *BackupHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	doc, err := h.repo.CreateBackup(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("creating backup")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "backup failed")

		return
	}

	metrics.BackupsTotal.Inc()

	filename := fmt.Sprintf("waylog-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	h.log.WithFields(logrus.Fields{
		"action":  "backup_create",
		"user_id": userID,
		"version": doc.Version,
		"trips":   len(doc.Trips),
	}).Info("audit")

	c.JSON(http.StatusOK, doc)
}

// Restore handles POST /api/v1/backup/restore.
// Accepts {backupData, options} and rebuilds the user's data graph.
func (h *BackupHandler) Restore(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if req.BackupData.Version == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "backup data missing version")

		return
	}

	opts := req.Options.Options()

	result, err := h.repo.RestoreFromBackup(c.Request.Context(), userID, req.BackupData, opts)
	if err != nil {
		if errors.Is(err, models.ErrIncompatibleVersion) {
			metrics.RestoresTotal.WithLabelValues("rejected").Inc()
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		metrics.RestoresTotal.WithLabelValues("failed").Inc()
		h.log.WithError(err).Error("restoring backup")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "restore failed")

		return
	}

	metrics.RestoresTotal.WithLabelValues("success").Inc()

	h.log.WithFields(logrus.Fields{
		"action":         "backup_restore",
		"user_id":        userID,
		"version":        req.BackupData.Version,
		"clear_existing": opts.ClearExistingData,
		"trips_imported": result.Stats.TripsImported,
		"links_skipped":  result.Stats.EntityLinksSkipped,
	}).Info("audit")

	c.JSON(http.StatusOK, result)
}

// Info handles GET /api/v1/backup/info.
// Reports the backup format this instance writes and accepts.
func (h *BackupHandler) Info(c *gin.Context) {
	if getUserID(c) == "" {
		return
	}

	c.JSON(http.StatusOK, h.repo.BackupInfo())
}
