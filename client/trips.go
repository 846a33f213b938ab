package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// TripService exposes the trip CRUD endpoints.
type TripService struct {
	c *Client
}

// ListTripsOptions filters and paginates trip listings.
type ListTripsOptions struct {
	Status string
	Limit  int
	Offset int
}

// List returns the user's trips, newest first, and whether more pages exist.
func (s *TripService) List(ctx context.Context, opts *ListTripsOptions) ([]Trip, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}

	var resp struct {
		Trips   []Trip `json:"trips"`
		HasMore bool   `json:"has_more"`
	}
	if err := s.c.get(ctx, "/api/v1/trips", params, &resp); err != nil {
		return nil, false, fmt.Errorf("list trips: %w", err)
	}

	return resp.Trips, resp.HasMore, nil
}

// Get returns a single trip by ID.
func (s *TripService) Get(ctx context.Context, id int64) (*Trip, error) {
	var trip Trip
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/trips/%d", id), nil, &trip); err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}

	return &trip, nil
}

// Create creates a new trip.
func (s *TripService) Create(ctx context.Context, req *CreateTripRequest) (*Trip, error) {
	var trip Trip
	if err := s.c.post(ctx, "/api/v1/trips", req, &trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	return &trip, nil
}

// Update applies a partial update to a trip.
func (s *TripService) Update(ctx context.Context, id int64, req *UpdateTripRequest) (*Trip, error) {
	var trip Trip
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/trips/%d", id), req, &trip); err != nil {
		return nil, fmt.Errorf("update trip %d: %w", id, err)
	}

	return &trip, nil
}

// Delete removes a trip and all its child records.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := s.c.del(ctx, fmt.Sprintf("/api/v1/trips/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}

	return nil
}
