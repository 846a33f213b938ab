package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/waylog/waylog/internal/models"
	"github.com/waylog/waylog/internal/store"
)

func caps(t *testing.T, version string) models.BackupCapabilities {
	t.Helper()

	c, ok := models.CapabilitiesFor(version)
	if !ok {
		t.Fatalf("unsupported version %q", version)
	}

	return c
}

func ptr[T any](v T) *T { return &v }

// fullDocument builds a current-version document exercising every section.
func fullDocument() *models.BackupDocument {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	return &models.BackupDocument{
		Version:    models.BackupVersionCurrent,
		ExportDate: time.Now().UTC(),
		User: models.BackupUser{
			Username:      "ignored",
			Email:         "ignored@test.invalid",
			Timezone:      "Europe/Lisbon",
			ImmichAPIURL:  "https://immich.test.invalid",
			ImmichAPIKey:  "immich-secret",
			WeatherAPIKey: "weather-secret",
			ActivityCategories: []models.ActivityCategory{
				{Name: "Hiking", Emoji: "🥾"},
			},
		},
		Tags: []models.BackupTag{
			{Name: "summer", Color: "#ffcc00", TextColor: "#000000"},
		},
		Companions: []models.BackupCompanion{
			{Name: "Alex", Relationship: "friend"},
		},
		LocationCategories: []models.BackupLocationCategory{
			{Name: "Restaurant", Icon: "🍽️", IsDefault: true},
		},
		Checklists: []models.BackupChecklist{
			{Name: "Packing", Type: "packing", Items: []models.BackupChecklistItem{
				{Name: "Passport", IsChecked: true},
				{Name: "Charger"},
			}},
		},
		TravelDocuments: []models.BackupTravelDocument{
			{Name: "Passport", DocumentType: "passport"},
		},
		TripSeries: []models.BackupTripSeries{
			{ID: 3, Name: "Portugal trips"},
		},
		Trips: []models.BackupTrip{
			{
				Title:        "Lisbon",
				StartDate:    &start,
				EndDate:      &end,
				Status:       "completed",
				PrivacyLevel: "private",
				SeriesID:     ptr(int64(3)),
				Locations: []models.BackupLocation{
					// Child declared before its parent to exercise
					// multi-pass resolution.
					{ID: 11, ParentID: ptr(int64(10)), Name: "Alfama"},
					{ID: 10, Name: "Lisbon"},
				},
				Photos: []models.BackupPhoto{
					{ID: 20, URL: "https://photos.test.invalid/1.jpg", Caption: "view"},
				},
				Activities: []models.BackupActivity{
					{ID: 30, Name: "Tram 28", Cost: 3.5, Currency: "EUR"},
				},
				Transportation: []models.BackupTransportation{
					{ID: 40, Type: "flight", Carrier: "TAP", FlightTracking: &models.BackupFlightTracking{
						FlightNumber: "TP123", AirlineCode: "TP",
					}},
				},
				Lodging: []models.BackupLodging{
					{ID: 50, Name: "Hotel Mundial"},
				},
				JournalEntries: []models.BackupJournalEntry{
					{ID: 60, Content: "First day in Lisbon."},
				},
				PhotoAlbums: []models.BackupPhotoAlbum{
					{ID: 70, Name: "Highlights", PhotoIDs: []int64{20}},
				},
				WeatherData: []models.BackupWeatherData{
					{Date: start, TemperatureHigh: 28, Conditions: "sunny"},
				},
				Tags:       []string{"summer"},
				Companions: []string{"Alex"},
				Checklists: []models.BackupChecklist{
					{Name: "Day trips", Items: []models.BackupChecklistItem{{Name: "Sintra"}}},
				},
				EntityLinks: []models.BackupEntityLink{
					{SourceType: models.KindPhoto, SourceID: 20, TargetType: models.KindLocation, TargetID: 11, Relationship: "taken_at"},
				},
				TripLanguages: []string{"pt"},
			},
		},
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	es := store.NewExportStore(base)
	ctx := context.Background()

	doc := fullDocument()

	stats, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{ImportPhotos: true})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if stats.TripsImported != 1 {
		t.Errorf("TripsImported = %d, want 1", stats.TripsImported)
	}

	if stats.LocationsImported != 2 {
		t.Errorf("LocationsImported = %d, want 2", stats.LocationsImported)
	}

	if stats.EntityLinksImported != 1 || stats.EntityLinksSkipped != 0 {
		t.Errorf("entity links = (%d imported, %d skipped), want (1, 0)",
			stats.EntityLinksImported, stats.EntityLinksSkipped)
	}

	out, err := es.ExportUserData(ctx, userID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	if out.User.Timezone != "Europe/Lisbon" {
		t.Errorf("Timezone = %q, want 'Europe/Lisbon'", out.User.Timezone)
	}

	// Secrets survive the encrypt/decrypt round trip.
	if out.User.ImmichAPIKey != "immich-secret" {
		t.Errorf("ImmichAPIKey = %q, want 'immich-secret'", out.User.ImmichAPIKey)
	}

	if len(out.Trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(out.Trips))
	}

	trip := out.Trips[0]

	if trip.Title != "Lisbon" {
		t.Errorf("Title = %q, want 'Lisbon'", trip.Title)
	}

	if trip.SeriesID == nil {
		t.Error("expected trip to keep its series reference")
	}

	if len(trip.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(trip.Locations))
	}

	// The child location must reference the parent's new ID.
	var parent, child *models.BackupLocation

	for i := range trip.Locations {
		switch trip.Locations[i].Name {
		case "Lisbon":
			parent = &trip.Locations[i]
		case "Alfama":
			child = &trip.Locations[i]
		}
	}

	if parent == nil || child == nil {
		t.Fatal("missing expected locations")
	}

	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Errorf("child parent = %v, want %d", child.ParentID, parent.ID)
	}

	if len(trip.PhotoAlbums) != 1 || len(trip.PhotoAlbums[0].PhotoIDs) != 1 {
		t.Fatalf("album assignments = %+v, want one album with one photo", trip.PhotoAlbums)
	}

	if len(trip.EntityLinks) != 1 {
		t.Fatalf("expected 1 entity link, got %d", len(trip.EntityLinks))
	}

	link := trip.EntityLinks[0]
	if link.SourceID != trip.Photos[0].ID || link.TargetID != child.ID {
		t.Errorf("entity link endpoints not remapped: %+v", link)
	}

	if len(trip.Tags) != 1 || trip.Tags[0] != "summer" {
		t.Errorf("Tags = %v, want [summer]", trip.Tags)
	}

	if len(trip.Checklists) != 1 || trip.Checklists[0].Name != "Day trips" {
		t.Errorf("trip checklists = %+v, want 'Day trips'", trip.Checklists)
	}
}

func TestRestore_SkipsDanglingEntityLinks(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	ctx := context.Background()

	doc := fullDocument()
	doc.Trips[0].EntityLinks = append(doc.Trips[0].EntityLinks, models.BackupEntityLink{
		SourceType: models.KindActivity, SourceID: 999,
		TargetType: models.KindLocation, TargetID: 10,
	})

	stats, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{ImportPhotos: true})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if stats.EntityLinksImported != 1 {
		t.Errorf("EntityLinksImported = %d, want 1", stats.EntityLinksImported)
	}

	if stats.EntityLinksSkipped != 1 {
		t.Errorf("EntityLinksSkipped = %d, want 1", stats.EntityLinksSkipped)
	}
}

func TestRestore_SkipPhotosDropsDependents(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	es := store.NewExportStore(base)
	ctx := context.Background()

	doc := fullDocument()

	stats, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{ImportPhotos: false})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if stats.PhotosImported != 0 {
		t.Errorf("PhotosImported = %d, want 0", stats.PhotosImported)
	}

	// The photo-to-location link cannot resolve its source any more.
	if stats.EntityLinksSkipped != 1 {
		t.Errorf("EntityLinksSkipped = %d, want 1", stats.EntityLinksSkipped)
	}

	out, err := es.ExportUserData(ctx, userID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	if len(out.Trips[0].Photos) != 0 {
		t.Errorf("expected no photos, got %d", len(out.Trips[0].Photos))
	}

	if len(out.Trips[0].PhotoAlbums[0].PhotoIDs) != 0 {
		t.Errorf("expected no album assignments, got %v", out.Trips[0].PhotoAlbums[0].PhotoIDs)
	}
}

func TestRestore_ClearExistingData(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	ts := store.NewTagStore(base)
	ctx := context.Background()

	if _, err := ts.CreateTag(ctx, userID, models.CreateTagRequest{Name: "stale"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	doc := fullDocument()

	if _, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{
		ClearExistingData: true,
		ImportPhotos:      true,
	}); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	tags, err := ts.ListTags(ctx, userID)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}

	if len(tags) != 1 || tags[0].Name != "summer" {
		t.Errorf("tags after clearing restore = %+v, want only 'summer'", tags)
	}
}

func TestRestore_ClearPreservesSectionsOlderVersionsLack(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	es := store.NewExportStore(base)
	ctx := context.Background()

	// Seed the account from a current-version document so travel documents
	// and trip series exist before the clearing restore.
	if _, err := rs.Restore(ctx, userID, fullDocument(), caps(t, models.BackupVersionCurrent), models.RestoreOptions{ImportPhotos: true}); err != nil {
		t.Fatalf("seed Restore: %v", err)
	}

	// A 1.0.0 document carries neither section, so clearing must not touch
	// the existing rows it cannot replace.
	doc := fullDocument()
	doc.Version = models.BackupVersion100
	doc.TravelDocuments = nil
	doc.TripSeries = nil

	if _, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{
		ClearExistingData: true,
		ImportPhotos:      true,
	}); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	out, err := es.ExportUserData(ctx, userID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	if len(out.TravelDocuments) != 1 || out.TravelDocuments[0].Name != "Passport" {
		t.Errorf("travel documents after clearing 1.0.0 restore = %+v, want the seeded 'Passport'", out.TravelDocuments)
	}

	if len(out.TripSeries) != 1 || out.TripSeries[0].Name != "Portugal trips" {
		t.Errorf("trip series after clearing 1.0.0 restore = %+v, want the seeded 'Portugal trips'", out.TripSeries)
	}

	// The versioned tables stay, everything else is cleared and re-imported.
	if len(out.Trips) != 1 {
		t.Errorf("expected 1 trip after clearing restore, got %d", len(out.Trips))
	}
}

func TestRestore_CreatesUndeclaredTripLabels(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	es := store.NewExportStore(base)
	ctx := context.Background()

	// Trip references a tag and a companion the document's top-level
	// collections never declare.
	doc := fullDocument()
	doc.Trips[0].Tags = append(doc.Trips[0].Tags, "roadtrip")
	doc.Trips[0].Companions = append(doc.Trips[0].Companions, "Riley")

	stats, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{ImportPhotos: true})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	// Rows created on the fly count like declared ones.
	if stats.TagsImported != 2 {
		t.Errorf("TagsImported = %d, want 2", stats.TagsImported)
	}

	if stats.CompanionsImported != 2 {
		t.Errorf("CompanionsImported = %d, want 2", stats.CompanionsImported)
	}

	out, err := es.ExportUserData(ctx, userID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	tags := make(map[string]bool)
	for _, name := range out.Trips[0].Tags {
		tags[name] = true
	}

	if len(tags) != 2 || !tags["summer"] || !tags["roadtrip"] {
		t.Errorf("trip tags = %v, want summer and roadtrip", out.Trips[0].Tags)
	}

	companions := make(map[string]bool)
	for _, name := range out.Trips[0].Companions {
		companions[name] = true
	}

	if len(companions) != 2 || !companions["Alex"] || !companions["Riley"] {
		t.Errorf("trip companions = %v, want Alex and Riley", out.Trips[0].Companions)
	}
}

func TestRestore_UnknownLocationParentRollsBack(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	es := store.NewExportStore(base)
	ctx := context.Background()

	doc := fullDocument()
	doc.Trips[0].Locations = []models.BackupLocation{
		{ID: 11, ParentID: ptr(int64(999)), Name: "Orphan"},
	}

	if _, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{ImportPhotos: true}); err == nil {
		t.Fatal("expected error for unknown location parent")
	}

	// The failed restore must leave nothing behind.
	out, err := es.ExportUserData(ctx, userID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	if len(out.Trips) != 0 {
		t.Errorf("expected 0 trips after rollback, got %d", len(out.Trips))
	}
}

func TestRestore_VersionWithoutOptionalSections(t *testing.T) {
	base, userID := setupTestBase(t)
	rs := store.NewRestoreStore(base)
	es := store.NewExportStore(base)
	ctx := context.Background()

	doc := fullDocument()
	doc.Version = models.BackupVersion100

	stats, err := rs.Restore(ctx, userID, doc, caps(t, doc.Version), models.RestoreOptions{ImportPhotos: true})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	// Sections the declared version cannot carry are ignored even if present.
	if stats.TravelDocumentsImported != 0 || stats.TripSeriesImported != 0 {
		t.Errorf("optional sections imported for 1.0.0: %+v", stats)
	}

	out, err := es.ExportUserData(ctx, userID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	// The series reference on the trip drops with its undeclared series.
	if out.Trips[0].SeriesID != nil {
		t.Error("expected series reference to be dropped")
	}
}
