// Package models defines data types for the travel journal.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip statuses accepted by CreateTripRequest and UpdateTripRequest.
const (
	TripStatusPlanning   = "planning"
	TripStatusInProgress = "in_progress"
	TripStatusCompleted  = "completed"
)

// Trip represents one journey owned by a user. Child collections (locations,
// photos, activities, ...) live in their own tables keyed by trip ID.
type Trip struct {
	ID           int64      `json:"id"`
	UserID       uuid.UUID  `json:"-"`
	SeriesID     *int64     `json:"series_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Timezone     string     `json:"timezone,omitempty"`
	Status       string     `json:"status"`
	PrivacyLevel string     `json:"privacy_level"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Location is a place visited on a trip. Locations form a tree within a trip
// via ParentID (e.g. country > city > neighbourhood).
type Location struct {
	ID        int64      `json:"id"`
	TripID    int64      `json:"trip_id"`
	ParentID  *int64     `json:"parent_id,omitempty"`
	Name      string     `json:"name"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Category  string     `json:"category,omitempty"`
	VisitDate *time.Time `json:"visit_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// Photo is a photo record attached to a trip. The binary lives elsewhere
// (local path or an Immich server); only metadata is stored here.
type Photo struct {
	ID       int64      `json:"id"`
	TripID   int64      `json:"trip_id"`
	URL      string     `json:"url"`
	Caption  string     `json:"caption,omitempty"`
	TakenAt  *time.Time `json:"taken_at,omitempty"`
	ImmichID string     `json:"immich_id,omitempty"`
}

// Activity is something done on a trip, with an optional cost.
type Activity struct {
	ID              int64      `json:"id"`
	TripID          int64      `json:"trip_id"`
	Name            string     `json:"name"`
	Category        string     `json:"category,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Cost            float64    `json:"cost,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// Transportation is a leg of travel (flight, train, car, ...).
type Transportation struct {
	ID               int64           `json:"id"`
	TripID           int64           `json:"trip_id"`
	Type             string          `json:"type"`
	Carrier          string          `json:"carrier,omitempty"`
	Origin           string          `json:"origin,omitempty"`
	Destination      string          `json:"destination,omitempty"`
	DepartureTime    *time.Time      `json:"departure_time,omitempty"`
	ArrivalTime      *time.Time      `json:"arrival_time,omitempty"`
	Cost             float64         `json:"cost,omitempty"`
	ConfirmationCode string          `json:"confirmation_code,omitempty"`
	FlightTracking   *FlightTracking `json:"flight_tracking,omitempty"`
}

// FlightTracking holds live-tracking metadata for a flight leg.
// At most one record per transportation row.
type FlightTracking struct {
	ID               int64  `json:"id"`
	TransportationID int64  `json:"transportation_id"`
	FlightNumber     string `json:"flight_number"`
	AirlineCode      string `json:"airline_code,omitempty"`
	DepartureAirport string `json:"departure_airport,omitempty"`
	ArrivalAirport   string `json:"arrival_airport,omitempty"`
	Status           string `json:"status,omitempty"`
}

// Lodging is a stay (hotel, rental, campsite) on a trip.
type Lodging struct {
	ID               int64      `json:"id"`
	TripID           int64      `json:"trip_id"`
	Name             string     `json:"name"`
	Address          string     `json:"address,omitempty"`
	CheckIn          *time.Time `json:"check_in,omitempty"`
	CheckOut         *time.Time `json:"check_out,omitempty"`
	Cost             float64    `json:"cost,omitempty"`
	ConfirmationCode string     `json:"confirmation_code,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// JournalEntry is a dated free-text entry on a trip.
type JournalEntry struct {
	ID        int64      `json:"id"`
	TripID    int64      `json:"trip_id"`
	Title     string     `json:"title,omitempty"`
	Content   string     `json:"content"`
	EntryDate *time.Time `json:"entry_date,omitempty"`
	Mood      string     `json:"mood,omitempty"`
}

// PhotoAlbum groups a trip's photos. Membership lives in album_photos.
type PhotoAlbum struct {
	ID          int64   `json:"id"`
	TripID      int64   `json:"trip_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	PhotoIDs    []int64 `json:"photo_ids,omitempty"`
}

// WeatherData is a per-day weather snapshot for a trip.
type WeatherData struct {
	ID              int64     `json:"id"`
	TripID          int64     `json:"trip_id"`
	Date            time.Time `json:"date"`
	TemperatureHigh float64   `json:"temperature_high,omitempty"`
	TemperatureLow  float64   `json:"temperature_low,omitempty"`
	Conditions      string    `json:"conditions,omitempty"`
	Humidity        int       `json:"humidity,omitempty"`
	Precipitation   float64   `json:"precipitation,omitempty"`
}

// EntityLink is a generic typed relationship between two entities on the same
// trip (e.g. a photo taken at a location). IDs are database identifiers; in a
// backup document they are backup-local and remapped on restore.
type EntityLink struct {
	ID           int64      `json:"id"`
	TripID       int64      `json:"trip_id"`
	SourceType   EntityKind `json:"source_type"`
	SourceID     int64      `json:"source_id"`
	TargetType   EntityKind `json:"target_type"`
	TargetID     int64      `json:"target_id"`
	Relationship string     `json:"relationship,omitempty"`
}

// CreateTripRequest is the payload for creating a new trip.
type CreateTripRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Timezone     string     `json:"timezone,omitempty"`
	Status       string     `json:"status,omitempty"`
	PrivacyLevel string     `json:"privacy_level,omitempty"`
	SeriesID     *int64     `json:"series_id,omitempty"`
}

// Validate checks required fields and limits. Empty status defaults to planning.
func (r *CreateTripRequest) Validate() error {
	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > 255 {
		return ErrFieldTooLong("title", 255)
	}

	if len(r.Description) > 65536 {
		return ErrFieldTooLong("description", 65536)
	}

	if r.Status == "" {
		r.Status = TripStatusPlanning
	}

	if !ValidTripStatus(r.Status) {
		return ErrInvalidStatus
	}

	if r.PrivacyLevel == "" {
		r.PrivacyLevel = "private"
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return ErrInvalidDates
	}

	return nil
}

// UpdateTripRequest is the payload for updating an existing trip.
// Nil fields are left unchanged.
type UpdateTripRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Timezone     *string    `json:"timezone,omitempty"`
	Status       *string    `json:"status,omitempty"`
	PrivacyLevel *string    `json:"privacy_level,omitempty"`
	SeriesID     *int64     `json:"series_id,omitempty"`
}

// Validate checks UpdateTripRequest fields.
func (r *UpdateTripRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return ErrMissingTitle
	}

	if r.Title != nil && len(*r.Title) > 255 {
		return ErrFieldTooLong("title", 255)
	}

	if r.Description != nil && len(*r.Description) > 65536 {
		return ErrFieldTooLong("description", 65536)
	}

	if r.Status != nil && !ValidTripStatus(*r.Status) {
		return ErrInvalidStatus
	}

	return nil
}

// ValidTripStatus reports whether s is a recognised trip status.
func ValidTripStatus(s string) bool {
	return s == TripStatusPlanning || s == TripStatusInProgress || s == TripStatusCompleted
}
