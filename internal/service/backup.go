// Package service implements business logic for the travel journal.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/domain"
	"github.com/waylog/waylog/internal/models"
)

// exportStore is the minimal store interface consumed by BackupService for
// exports. Defined at the consumer (per project convention) so the store
// package depends on no service types.
type exportStore interface {
	ExportUserData(ctx context.Context, userID string) (*models.BackupDocument, error)
}

// restoreStore is the minimal store interface consumed for restores.
type restoreStore interface {
	Restore(ctx context.Context, userID string, doc *models.BackupDocument, caps models.BackupCapabilities, opts models.RestoreOptions) (*models.RestoreStats, error)
}

// Compile-time check: *BackupService must satisfy domain.BackupService.
var _ domain.BackupService = (*BackupService)(nil)

// BackupService implements domain.BackupService.
type BackupService struct {
	export  exportStore
	restore restoreStore
	log     *logrus.Logger
}

// NewBackupService creates a BackupService.
func NewBackupService(export exportStore, restore restoreStore, log *logrus.Logger) *BackupService {
	return &BackupService{export: export, restore: restore, log: log}
}

// CreateBackup exports the user's full data graph as a versioned document.
// New exports always carry the current format version.
func (s *BackupService) CreateBackup(ctx context.Context, userID string) (*models.BackupDocument, error) {
	doc, err := s.export.ExportUserData(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creating backup: %w", err)
	}

	doc.Version = models.BackupVersionCurrent
	doc.ExportDate = time.Now().UTC()

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"version": doc.Version,
		"trips":   len(doc.Trips),
	}).Info("backup created")

	return doc, nil
}

// RestoreFromBackup validates the document version and hands the document to
// the restore engine. The version gate runs before any database work so an
// unsupported document is rejected without side effects.
func (s *BackupService) RestoreFromBackup(ctx context.Context, userID string, doc *models.BackupDocument, opts models.RestoreOptions) (*models.RestoreResult, error) {
	caps, ok := models.CapabilitiesFor(doc.Version)
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			models.ErrIncompatibleVersion, doc.Version,
			strings.Join(models.SupportedBackupVersions(), ", "))
	}

	stats, err := s.restore.Restore(ctx, userID, doc, caps, opts)
	if err != nil {
		return nil, fmt.Errorf("Failed to restore from backup: %w", err)
	}

	return &models.RestoreResult{
		Success: true,
		Message: "Data restored successfully",
		Stats:   *stats,
	}, nil
}

// BackupInfo reports the backup format this instance writes and accepts.
func (s *BackupService) BackupInfo() models.BackupInfo {
	return models.BackupInfo{
		CurrentVersion:    models.BackupVersionCurrent,
		SupportedVersions: models.SupportedBackupVersions(),
		SupportedFormats:  []string{"json"},
	}
}
