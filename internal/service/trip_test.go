package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/waylog/waylog/internal/models"
	"github.com/waylog/waylog/internal/service"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parsing date %q: %v", s, err)
	}

	return d
}

func TestCreateTrip_DefaultsStatus(t *testing.T) {
	store := &mockTripStore{}
	svc := service.NewTripService(store)

	trip, err := svc.CreateTrip(context.Background(), "user-1", models.CreateTripRequest{Title: "Japan"})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	if trip.Status != models.TripStatusPlanning {
		t.Errorf("Status = %q, want planning default", trip.Status)
	}

	if trip.PrivacyLevel != "private" {
		t.Errorf("PrivacyLevel = %q, want private default", trip.PrivacyLevel)
	}
}

func TestCreateTrip_RequiresTitle(t *testing.T) {
	store := &mockTripStore{}
	svc := service.NewTripService(store)

	_, err := svc.CreateTrip(context.Background(), "user-1", models.CreateTripRequest{})
	if !errors.Is(err, models.ErrMissingTitle) {
		t.Fatalf("err = %v, want ErrMissingTitle", err)
	}

	if store.created != nil {
		t.Error("invalid request must not reach the store")
	}
}

func TestCreateTrip_RejectsReversedDates(t *testing.T) {
	svc := service.NewTripService(&mockTripStore{})

	start := mustDate(t, "2025-07-10")
	end := mustDate(t, "2025-07-01")

	_, err := svc.CreateTrip(context.Background(), "user-1", models.CreateTripRequest{
		Title:     "Backwards",
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, models.ErrInvalidDates) {
		t.Fatalf("err = %v, want ErrInvalidDates", err)
	}
}

func TestListTrips_RejectsUnknownStatus(t *testing.T) {
	svc := service.NewTripService(&mockTripStore{})

	_, _, err := svc.ListTrips(context.Background(), "user-1", "abandoned", 20, 0)
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateTrip_RejectsEmptyTitle(t *testing.T) {
	svc := service.NewTripService(&mockTripStore{})

	empty := ""

	_, err := svc.UpdateTrip(context.Background(), "user-1", 1, models.UpdateTripRequest{Title: &empty})
	if !errors.Is(err, models.ErrMissingTitle) {
		t.Fatalf("err = %v, want ErrMissingTitle", err)
	}
}
