package service

import (
	"context"
	"fmt"

	"github.com/waylog/waylog/internal/domain"
	"github.com/waylog/waylog/internal/models"
)

// tripStore is the minimal store interface consumed by TripService.
type tripStore interface {
	ListTrips(ctx context.Context, userID string, status string, limit, offset int) ([]models.Trip, bool, error)
	GetTrip(ctx context.Context, userID string, tripID int64) (*models.Trip, error)
	CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error)
	UpdateTrip(ctx context.Context, userID string, tripID int64, req models.UpdateTripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, userID string, tripID int64) error
}

var _ domain.TripService = (*TripService)(nil)

// TripService implements domain.TripService.
type TripService struct {
	store tripStore
}

// NewTripService creates a TripService.
func NewTripService(store tripStore) *TripService {
	return &TripService{store: store}
}

// ListTrips returns a page of the user's trips, optionally filtered by status.
func (s *TripService) ListTrips(ctx context.Context, userID string, status string, limit, offset int) ([]models.Trip, bool, error) {
	if status != "" && !models.ValidTripStatus(status) {
		return nil, false, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	return s.store.ListTrips(ctx, userID, status, limit, offset)
}

// GetTrip returns one trip by ID.
func (s *TripService) GetTrip(ctx context.Context, userID string, tripID int64) (*models.Trip, error) {
	return s.store.GetTrip(ctx, userID, tripID)
}

// CreateTrip validates and creates a trip.
func (s *TripService) CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateTrip(ctx, userID, req)
}

// UpdateTrip validates and applies a partial trip update.
func (s *TripService) UpdateTrip(ctx context.Context, userID string, tripID int64, req models.UpdateTripRequest) (*models.Trip, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.UpdateTrip(ctx, userID, tripID, req)
}

// DeleteTrip removes a trip and all of its children.
func (s *TripService) DeleteTrip(ctx context.Context, userID string, tripID int64) error {
	return s.store.DeleteTrip(ctx, userID, tripID)
}
