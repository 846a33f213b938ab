package client

import "time"

// Trip represents one journey in the travel journal.
type Trip struct {
	ID           int64      `json:"id"`
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

// CreateTripRequest is the payload for creating a trip.
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

// UpdateTripRequest is the payload for updating a trip. Nil fields are left
// unchanged.
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

// Tag is a user-defined label that can be attached to trips.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"text_color,omitempty"`
}

// CreateTagRequest is the payload for creating a tag.
type CreateTagRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"text_color,omitempty"`
}

// Companion is a person the user travels with.
type Companion struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// CreateCompanionRequest is the payload for creating a companion.
type CreateCompanionRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// User is the authenticated user's profile. API keys for integrations are
// write-only and never echoed back.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Timezone     string    `json:"timezone,omitempty"`
	ImmichAPIURL string    `json:"immich_api_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateIntegrationsRequest sets third-party integration credentials.
type UpdateIntegrationsRequest struct {
	ImmichAPIURL  string `json:"immich_api_url,omitempty"`
	ImmichAPIKey  string `json:"immich_api_key,omitempty"`
	WeatherAPIKey string `json:"weather_api_key,omitempty"`
}

// HealthResponse is the liveness check response.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	Websockets    int     `json:"websockets"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// StatsResponse holds aggregate counts for the authenticated user.
type StatsResponse struct {
	Trips          int `json:"trips"`
	Locations      int `json:"locations"`
	Photos         int `json:"photos"`
	JournalEntries int `json:"journal_entries"`
	Tags           int `json:"tags"`
	Companions     int `json:"companions"`
	TripSeries     int `json:"trip_series"`
}
