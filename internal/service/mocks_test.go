package service_test

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/models"
	"github.com/waylog/waylog/internal/service"
)

// mockExportStore implements service.exportStore for tests.
type mockExportStore struct {
	doc *models.BackupDocument
	err error
}

func (m *mockExportStore) ExportUserData(_ context.Context, _ string) (*models.BackupDocument, error) {
	if m.err != nil {
		return nil, m.err
	}

	if m.doc != nil {
		return m.doc, nil
	}

	return &models.BackupDocument{}, nil
}

// mockRestoreStore implements service.restoreStore for tests.
type mockRestoreStore struct {
	stats    *models.RestoreStats
	err      error
	called   bool
	gotCaps  models.BackupCapabilities
	gotOpts  models.RestoreOptions
}

func (m *mockRestoreStore) Restore(_ context.Context, _ string, _ *models.BackupDocument, caps models.BackupCapabilities, opts models.RestoreOptions) (*models.RestoreStats, error) {
	m.called = true
	m.gotCaps = caps
	m.gotOpts = opts

	if m.err != nil {
		return nil, m.err
	}

	if m.stats != nil {
		return m.stats, nil
	}

	return &models.RestoreStats{}, nil
}

func newBackupService(export *mockExportStore, restore *mockRestoreStore) *service.BackupService {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return service.NewBackupService(export, restore, log)
}

// mockTripStore implements service.tripStore for tests.
type mockTripStore struct {
	trips   []models.Trip
	created *models.CreateTripRequest
	err     error
}

func (m *mockTripStore) ListTrips(_ context.Context, _ string, _ string, _, _ int) ([]models.Trip, bool, error) {
	return m.trips, false, m.err
}

func (m *mockTripStore) GetTrip(_ context.Context, _ string, _ int64) (*models.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}

	return &models.Trip{}, nil
}

func (m *mockTripStore) CreateTrip(_ context.Context, _ string, req models.CreateTripRequest) (*models.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}

	m.created = &req

	return &models.Trip{Title: req.Title, Status: req.Status, PrivacyLevel: req.PrivacyLevel}, nil
}

func (m *mockTripStore) UpdateTrip(_ context.Context, _ string, _ int64, _ models.UpdateTripRequest) (*models.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}

	return &models.Trip{}, nil
}

func (m *mockTripStore) DeleteTrip(_ context.Context, _ string, _ int64) error {
	return m.err
}
