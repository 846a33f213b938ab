package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns a data graph. API access is authenticated by
// a hashed API key; integration secrets are stored encrypted and only leave
// the store decrypted (e.g. inside a backup document).
type User struct {
	ID                 uuid.UUID          `json:"id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	Timezone           string             `json:"timezone,omitempty"`
	ActivityCategories []ActivityCategory `json:"activity_categories,omitempty"`
	ImmichAPIURL       string             `json:"immich_api_url,omitempty"`
	ImmichAPIKey       string             `json:"-"`
	WeatherAPIKey      string             `json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
