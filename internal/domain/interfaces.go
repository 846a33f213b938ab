// Package domain defines the canonical service interfaces shared across API
// layers (REST handlers, client, CLI). Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/waylog/waylog/internal/models"
)

// BackupService defines backup export and restore operations.
type BackupService interface {
	CreateBackup(ctx context.Context, userID string) (*models.BackupDocument, error)
	RestoreFromBackup(ctx context.Context, userID string, doc *models.BackupDocument, opts models.RestoreOptions) (*models.RestoreResult, error)
	BackupInfo() models.BackupInfo
}

// TripService defines trip CRUD operations.
type TripService interface {
	ListTrips(ctx context.Context, userID string, status string, limit, offset int) ([]models.Trip, bool, error)
	GetTrip(ctx context.Context, userID string, tripID int64) (*models.Trip, error)
	CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error)
	UpdateTrip(ctx context.Context, userID string, tripID int64, req models.UpdateTripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, userID string, tripID int64) error
}

// TagService defines tag operations.
type TagService interface {
	ListTags(ctx context.Context, userID string) ([]models.Tag, error)
	CreateTag(ctx context.Context, userID string, req models.CreateTagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, userID string, tagID int64) error
}

// CompanionService defines travel companion operations.
type CompanionService interface {
	ListCompanions(ctx context.Context, userID string) ([]models.Companion, error)
	CreateCompanion(ctx context.Context, userID string, req models.CreateCompanionRequest) (*models.Companion, error)
	DeleteCompanion(ctx context.Context, userID string, companionID int64) error
}

// UserService defines account profile operations.
type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateIntegrationKeys(ctx context.Context, userID, immichURL, immichKey, weatherKey string) error
}
