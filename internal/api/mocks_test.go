package api_test

import (
	"context"

	"github.com/waylog/waylog/internal/models"
)

// mockBackupRepo implements api.BackupRepository with overridable funcs.
type mockBackupRepo struct {
	createFn  func(ctx context.Context, userID string) (*models.BackupDocument, error)
	restoreFn func(ctx context.Context, userID string, doc *models.BackupDocument, opts models.RestoreOptions) (*models.RestoreResult, error)
	infoFn    func() models.BackupInfo
}

func (m *mockBackupRepo) CreateBackup(ctx context.Context, userID string) (*models.BackupDocument, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID)
	}

	return &models.BackupDocument{Version: models.BackupVersionCurrent}, nil
}

func (m *mockBackupRepo) RestoreFromBackup(ctx context.Context, userID string, doc *models.BackupDocument, opts models.RestoreOptions) (*models.RestoreResult, error) {
	if m.restoreFn != nil {
		return m.restoreFn(ctx, userID, doc, opts)
	}

	return &models.RestoreResult{Success: true, Message: "Data restored successfully"}, nil
}

func (m *mockBackupRepo) BackupInfo() models.BackupInfo {
	if m.infoFn != nil {
		return m.infoFn()
	}

	return models.BackupInfo{
		CurrentVersion:    models.BackupVersionCurrent,
		SupportedVersions: models.SupportedBackupVersions(),
		SupportedFormats:  []string{"json"},
	}
}

// mockTripRepo implements api.TripRepository with overridable funcs.
type mockTripRepo struct {
	listFn   func(ctx context.Context, userID, status string, limit, offset int) ([]models.Trip, bool, error)
	getFn    func(ctx context.Context, userID string, tripID int64) (*models.Trip, error)
	createFn func(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error)
	updateFn func(ctx context.Context, userID string, tripID int64, req models.UpdateTripRequest) (*models.Trip, error)
	deleteFn func(ctx context.Context, userID string, tripID int64) error
}

func (m *mockTripRepo) ListTrips(ctx context.Context, userID, status string, limit, offset int) ([]models.Trip, bool, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, status, limit, offset)
	}

	return nil, false, nil
}

func (m *mockTripRepo) GetTrip(ctx context.Context, userID string, tripID int64) (*models.Trip, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, tripID)
	}

	return &models.Trip{ID: tripID}, nil
}

func (m *mockTripRepo) CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}

	return &models.Trip{Title: req.Title}, nil
}

func (m *mockTripRepo) UpdateTrip(ctx context.Context, userID string, tripID int64, req models.UpdateTripRequest) (*models.Trip, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, tripID, req)
	}

	return &models.Trip{ID: tripID}, nil
}

func (m *mockTripRepo) DeleteTrip(ctx context.Context, userID string, tripID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, tripID)
	}

	return nil
}

// mockTagRepo implements api.TagRepository with overridable funcs.
type mockTagRepo struct {
	listFn   func(ctx context.Context, userID string) ([]models.Tag, error)
	createFn func(ctx context.Context, userID string, req models.CreateTagRequest) (*models.Tag, error)
	deleteFn func(ctx context.Context, userID string, tagID int64) error
}

func (m *mockTagRepo) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}

	return nil, nil
}

func (m *mockTagRepo) CreateTag(ctx context.Context, userID string, req models.CreateTagRequest) (*models.Tag, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}

	return &models.Tag{Name: req.Name}, nil
}

func (m *mockTagRepo) DeleteTag(ctx context.Context, userID string, tagID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, tagID)
	}

	return nil
}
