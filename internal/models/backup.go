package models

import "time"

// Backup format versions. A new version is cut whenever the document gains a
// top-level collection; the restore engine gates optional sections on the
// document's declared version.
const (
	BackupVersion100 = "1.0.0" // initial format
	BackupVersion110 = "1.1.0" // adds travelDocuments
	BackupVersion120 = "1.2.0" // adds tripSeries

	// BackupVersionCurrent is the version written by new exports.
	BackupVersionCurrent = BackupVersion120
)

// EntityKind enumerates the entity types that can appear as an entity link
// endpoint. Values match the wire format of the backup document.
type EntityKind string

// Entity kinds trackable in the restore remap table.
const (
	KindActivity       EntityKind = "ACTIVITY"
	KindLocation       EntityKind = "LOCATION"
	KindPhoto          EntityKind = "PHOTO"
	KindLodging        EntityKind = "LODGING"
	KindTransportation EntityKind = "TRANSPORTATION"
	KindJournalEntry   EntityKind = "JOURNAL_ENTRY"
	KindPhotoAlbum     EntityKind = "PHOTO_ALBUM"
)

// Known reports whether k is an entity kind tracked by the remap table.
func (k EntityKind) Known() bool {
	switch k {
	case KindActivity, KindLocation, KindPhoto, KindLodging,
		KindTransportation, KindJournalEntry, KindPhotoAlbum:
		return true
	}

	return false
}

// BackupDocument is the versioned envelope for one user's full data graph.
// All entity IDs inside it are backup-local: they are only meaningful for
// resolving references within the same document and are remapped to fresh
// database IDs on restore.
type BackupDocument struct {
	Version            string                   `json:"version"`
	ExportDate         time.Time                `json:"exportDate"`
	User               BackupUser               `json:"user"`
	Tags               []BackupTag              `json:"tags"`
	Companions         []BackupCompanion        `json:"companions"`
	LocationCategories []BackupLocationCategory `json:"locationCategories"`
	Checklists         []BackupChecklist        `json:"checklists"`
	TravelDocuments    []BackupTravelDocument   `json:"travelDocuments,omitempty"` // version >= 1.1.0
	TripSeries         []BackupTripSeries       `json:"tripSeries,omitempty"`      // version >= 1.2.0
	Trips              []BackupTrip             `json:"trips"`
}

// BackupUser is the profile snapshot embedded in a backup document.
// Integration keys are exported in plaintext so the document is portable.
type BackupUser struct {
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	Timezone           string             `json:"timezone,omitempty"`
	ActivityCategories []ActivityCategory `json:"activityCategories,omitempty"`
	ImmichAPIURL       string             `json:"immichApiUrl,omitempty"`
	ImmichAPIKey       string             `json:"immichApiKey,omitempty"`
	WeatherAPIKey      string             `json:"weatherApiKey,omitempty"`
}

// BackupTag mirrors Tag without IDs; restore matches trip references by name.
type BackupTag struct {
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"textColor,omitempty"`
}

// BackupCompanion mirrors Companion without IDs.
type BackupCompanion struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// BackupLocationCategory mirrors LocationCategory without IDs.
type BackupLocationCategory struct {
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// BackupChecklist is used both for top-level and trip-level checklists.
type BackupChecklist struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Type        string                `json:"type,omitempty"`
	Items       []BackupChecklistItem `json:"items"`
}

// BackupChecklistItem is one entry on a backed-up checklist.
type BackupChecklistItem struct {
	Name      string `json:"name"`
	IsChecked bool   `json:"isChecked"`
}

// BackupTravelDocument mirrors TravelDocument without IDs.
type BackupTravelDocument struct {
	Name         string     `json:"name"`
	DocumentType string     `json:"documentType,omitempty"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	FilePath     string     `json:"filePath,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// BackupTripSeries carries a backup-local ID because trips reference their
// series by ID rather than by name.
type BackupTripSeries struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BackupTrip embeds all child collections of one trip.
type BackupTrip struct {
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	StartDate      *time.Time             `json:"startDate,omitempty"`
	EndDate        *time.Time             `json:"endDate,omitempty"`
	Timezone       string                 `json:"timezone,omitempty"`
	Status         string                 `json:"status"`
	PrivacyLevel   string                 `json:"privacyLevel"`
	SeriesID       *int64                 `json:"seriesId,omitempty"` // backup-local tripSeries ID
	Locations      []BackupLocation       `json:"locations"`
	Photos         []BackupPhoto          `json:"photos"`
	Activities     []BackupActivity       `json:"activities"`
	Transportation []BackupTransportation `json:"transportation"`
	Lodging        []BackupLodging        `json:"lodging"`
	JournalEntries []BackupJournalEntry   `json:"journalEntries"`
	PhotoAlbums    []BackupPhotoAlbum     `json:"photoAlbums"`
	WeatherData    []BackupWeatherData    `json:"weatherData"`
	Tags           []string               `json:"tags"`       // names, resolved against top-level tags
	Companions     []string               `json:"companions"` // names, resolved against top-level companions
	Checklists     []BackupChecklist      `json:"checklists"`
	EntityLinks    []BackupEntityLink     `json:"entityLinks"`
	TripLanguages  []string               `json:"tripLanguages"`
}

// BackupLocation carries a backup-local ID and parent reference so the
// location tree can be rebuilt parent-before-child.
type BackupLocation struct {
	ID        int64      `json:"id"`
	ParentID  *int64     `json:"parentId,omitempty"`
	Name      string     `json:"name"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Category  string     `json:"category,omitempty"`
	VisitDate *time.Time `json:"visitDate,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// BackupPhoto mirrors Photo with a backup-local ID for album assignments
// and entity links.
type BackupPhoto struct {
	ID       int64      `json:"id"`
	URL      string     `json:"url"`
	Caption  string     `json:"caption,omitempty"`
	TakenAt  *time.Time `json:"takenAt,omitempty"`
	ImmichID string     `json:"immichId,omitempty"`
}

// BackupActivity mirrors Activity with a backup-local ID.
type BackupActivity struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	Cost            float64    `json:"cost,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// BackupTransportation mirrors Transportation with a backup-local ID and the
// optional nested flight tracking record.
type BackupTransportation struct {
	ID               int64                 `json:"id"`
	Type             string                `json:"type"`
	Carrier          string                `json:"carrier,omitempty"`
	Origin           string                `json:"origin,omitempty"`
	Destination      string                `json:"destination,omitempty"`
	DepartureTime    *time.Time            `json:"departureTime,omitempty"`
	ArrivalTime      *time.Time            `json:"arrivalTime,omitempty"`
	Cost             float64               `json:"cost,omitempty"`
	ConfirmationCode string                `json:"confirmationCode,omitempty"`
	FlightTracking   *BackupFlightTracking `json:"flightTracking,omitempty"`
}

// BackupFlightTracking mirrors FlightTracking; it needs no backup-local ID
// because nothing references it.
type BackupFlightTracking struct {
	FlightNumber     string `json:"flightNumber"`
	AirlineCode      string `json:"airlineCode,omitempty"`
	DepartureAirport string `json:"departureAirport,omitempty"`
	ArrivalAirport   string `json:"arrivalAirport,omitempty"`
	Status           string `json:"status,omitempty"`
}

// BackupLodging mirrors Lodging with a backup-local ID.
type BackupLodging struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Address          string     `json:"address,omitempty"`
	CheckIn          *time.Time `json:"checkIn,omitempty"`
	CheckOut         *time.Time `json:"checkOut,omitempty"`
	Cost             float64    `json:"cost,omitempty"`
	ConfirmationCode string     `json:"confirmationCode,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// BackupJournalEntry mirrors JournalEntry with a backup-local ID.
type BackupJournalEntry struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title,omitempty"`
	Content   string     `json:"content"`
	EntryDate *time.Time `json:"entryDate,omitempty"`
	Mood      string     `json:"mood,omitempty"`
}

// BackupPhotoAlbum mirrors PhotoAlbum. PhotoIDs are backup-local photo IDs;
// assignments whose photo was skipped on import are dropped.
type BackupPhotoAlbum struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	PhotoIDs    []int64 `json:"photoIds"`
}

// BackupWeatherData mirrors WeatherData; nothing references it by ID.
type BackupWeatherData struct {
	Date            time.Time `json:"date"`
	TemperatureHigh float64   `json:"temperatureHigh,omitempty"`
	TemperatureLow  float64   `json:"temperatureLow,omitempty"`
	Conditions      string    `json:"conditions,omitempty"`
	Humidity        int       `json:"humidity,omitempty"`
	Precipitation   float64   `json:"precipitation,omitempty"`
}

// BackupEntityLink is a polymorphic relationship between two backup-local
// entity references within the same trip.
type BackupEntityLink struct {
	SourceType   EntityKind `json:"sourceType"`
	SourceID     int64      `json:"sourceId"`
	TargetType   EntityKind `json:"targetType"`
	TargetID     int64      `json:"targetId"`
	Relationship string     `json:"relationship,omitempty"`
}

// RestoreOptions controls the behaviour of a restore operation.
type RestoreOptions struct {
	// ClearExistingData deletes the destination user's existing trips and
	// top-level collections before importing.
	ClearExistingData bool
	// ImportPhotos controls whether photo rows are created. When false,
	// album assignments and entity links referencing photos are dropped too.
	ImportPhotos bool
}

// RestoreOptionsRequest is the wire form of RestoreOptions with pointer
// fields so absent keys take their documented defaults (clear=false,
// importPhotos=true).
type RestoreOptionsRequest struct {
	ClearExistingData *bool `json:"clearExistingData,omitempty"`
	ImportPhotos      *bool `json:"importPhotos,omitempty"`
}

// Options resolves the request into concrete RestoreOptions.
func (r *RestoreOptionsRequest) Options() RestoreOptions {
	opts := RestoreOptions{ImportPhotos: true}

	if r == nil {
		return opts
	}

	if r.ClearExistingData != nil {
		opts.ClearExistingData = *r.ClearExistingData
	}

	if r.ImportPhotos != nil {
		opts.ImportPhotos = *r.ImportPhotos
	}

	return opts
}

// RestoreStats accumulates per-category counts for one restore call.
type RestoreStats struct {
	TripsImported              int `json:"tripsImported"`
	LocationsImported          int `json:"locationsImported"`
	PhotosImported             int `json:"photosImported"`
	ActivitiesImported         int `json:"activitiesImported"`
	TransportationImported     int `json:"transportationImported"`
	LodgingImported            int `json:"lodgingImported"`
	JournalEntriesImported     int `json:"journalEntriesImported"`
	PhotoAlbumsImported        int `json:"photoAlbumsImported"`
	WeatherImported            int `json:"weatherImported"`
	TagsImported               int `json:"tagsImported"`
	CompanionsImported         int `json:"companionsImported"`
	LocationCategoriesImported int `json:"locationCategoriesImported"`
	ChecklistsImported         int `json:"checklistsImported"`
	TravelDocumentsImported    int `json:"travelDocumentsImported"`
	TripSeriesImported         int `json:"tripSeriesImported"`
	EntityLinksImported        int `json:"entityLinksImported"`
	EntityLinksSkipped         int `json:"entityLinksSkipped"`
	TripLanguagesImported      int `json:"tripLanguagesImported"`
}

// RestoreResult is returned to the caller after a successful restore.
type RestoreResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Stats   RestoreStats `json:"stats"`
}
