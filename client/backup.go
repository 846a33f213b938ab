package client

import (
	"context"
	"fmt"

	"github.com/waylog/waylog/internal/models"
)

// BackupService exposes the backup and restore endpoints.
type BackupService struct {
	c *Client
}

// RestoreOptions controls how a restore is applied. Absent fields take the
// server defaults (clearExistingData=false, importPhotos=true).
type RestoreOptions struct {
	ClearExistingData *bool `json:"clearExistingData,omitempty"`
	ImportPhotos      *bool `json:"importPhotos,omitempty"`
}

// Create downloads a full backup of the authenticated user's journal.
func (s *BackupService) Create(ctx context.Context) (*models.BackupDocument, error) {
	var doc models.BackupDocument
	if err := s.c.post(ctx, "/api/v1/backup/create", nil, &doc); err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}

	return &doc, nil
}

// Restore imports a backup document into the authenticated user's journal.
func (s *BackupService) Restore(ctx context.Context, doc *models.BackupDocument, opts *RestoreOptions) (*models.RestoreResult, error) {
	req := struct {
		BackupData *models.BackupDocument `json:"backupData"`
		Options    *RestoreOptions        `json:"options,omitempty"`
	}{BackupData: doc, Options: opts}

	var result models.RestoreResult
	if err := s.c.post(ctx, "/api/v1/backup/restore", req, &result); err != nil {
		return nil, fmt.Errorf("restore backup: %w", err)
	}

	return &result, nil
}

// Info reports the backup format version the server writes and the versions
// it accepts.
func (s *BackupService) Info(ctx context.Context) (*models.BackupInfo, error) {
	var info models.BackupInfo
	if err := s.c.get(ctx, "/api/v1/backup/info", nil, &info); err != nil {
		return nil, fmt.Errorf("backup info: %w", err)
	}

	return &info, nil
}
