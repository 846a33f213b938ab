package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a user-scoped label that can be attached to trips.
// Names are unique per user; trip associations resolve by name on restore.
type Tag struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	TextColor string    `json:"text_color,omitempty"`
}

// Companion is a person the user travels with.
type Companion struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// LocationCategory is a user-defined category for locations (restaurant,
// museum, ...). IsDefault marks the seeded set that cannot be renamed.
type LocationCategory struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	IsDefault bool      `json:"is_default"`
}

// Checklist is a packing or todo list, either top-level (TripID nil) or
// attached to a trip.
type Checklist struct {
	ID          int64           `json:"id"`
	UserID      uuid.UUID       `json:"-"`
	TripID      *int64          `json:"trip_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type,omitempty"`
	Items       []ChecklistItem `json:"items"`
}

// ChecklistItem is one entry on a checklist.
type ChecklistItem struct {
	ID          int64  `json:"id"`
	ChecklistID int64  `json:"checklist_id"`
	Name        string `json:"name"`
	IsChecked   bool   `json:"is_checked"`
	Position    int    `json:"position"`
}

// TravelDocument is a passport, visa or similar document record.
// Present in backups since format 1.1.0.
type TravelDocument struct {
	ID           int64      `json:"id"`
	UserID       uuid.UUID  `json:"-"`
	Name         string     `json:"name"`
	DocumentType string     `json:"document_type,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	FilePath     string     `json:"file_path,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// TripSeries groups recurring trips (e.g. "Annual ski week").
// Present in backups since format 1.2.0.
type TripSeries struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ActivityCategory is a user-configured activity category with an emoji,
// stored on the user profile.
type ActivityCategory struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

// CreateTagRequest is the payload for creating a tag.
type CreateTagRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"text_color,omitempty"`
}

// Validate checks CreateTagRequest fields.
func (r *CreateTagRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}

	if len(r.Name) > 100 {
		return ErrFieldTooLong("name", 100)
	}

	return nil
}

// CreateCompanionRequest is the payload for creating a companion.
type CreateCompanionRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Validate checks CreateCompanionRequest fields.
func (r *CreateCompanionRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}

	if len(r.Name) > 255 {
		return ErrFieldTooLong("name", 255)
	}

	return nil
}
