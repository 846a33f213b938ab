package api

import (
	"context"

	"github.com/waylog/waylog/internal/models"
)

// BackupRepository defines backup operations used by BackupHandler.
type BackupRepository interface {
	CreateBackup(ctx context.Context, userID string) (*models.BackupDocument, error)
	RestoreFromBackup(ctx context.Context, userID string, doc *models.BackupDocument, opts models.RestoreOptions) (*models.RestoreResult, error)
	BackupInfo() models.BackupInfo
}

// TripRepository defines trip operations used by TripHandler.
type TripRepository interface {
	ListTrips(ctx context.Context, userID string, status string, limit, offset int) ([]models.Trip, bool, error)
	GetTrip(ctx context.Context, userID string, tripID int64) (*models.Trip, error)
	CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error)
	UpdateTrip(ctx context.Context, userID string, tripID int64, req models.UpdateTripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, userID string, tripID int64) error
}

// TagRepository defines tag operations used by TagHandler.
type TagRepository interface {
	ListTags(ctx context.Context, userID string) ([]models.Tag, error)
	CreateTag(ctx context.Context, userID string, req models.CreateTagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, userID string, tagID int64) error
}

// CompanionRepository defines companion operations used by CompanionHandler.
type CompanionRepository interface {
	ListCompanions(ctx context.Context, userID string) ([]models.Companion, error)
	CreateCompanion(ctx context.Context, userID string, req models.CreateCompanionRequest) (*models.Companion, error)
	DeleteCompanion(ctx context.Context, userID string, companionID int64) error
}

// UserRepository defines account operations used by UserHandler.
type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateIntegrationKeys(ctx context.Context, userID, immichURL, immichKey, weatherKey string) error
}
