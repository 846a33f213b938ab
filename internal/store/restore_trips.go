package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/waylog/waylog/internal/models"
)

// restoreTrip creates one trip and all of its children. Insertion order
// follows the reference graph: the trip row first, then referenceable
// entities, then everything that points at them. Entity links go last so
// every possible endpoint is already in the remap table.
func (s *RestoreStore) restoreTrip(ctx context.Context, tx pgx.Tx, userID string, trip *models.BackupTrip, remap *remapTable, opts models.RestoreOptions, stats *models.RestoreStats) error {
	var seriesID *int64

	if trip.SeriesID != nil {
		// A series reference the document never declared is dropped
		// rather than failing the whole restore.
		if newID, ok := remap.seriesByID[*trip.SeriesID]; ok {
			seriesID = &newID
		}
	}

	var tripID int64

	err := tx.QueryRow(ctx, `
		INSERT INTO trips (user_id, series_id, title, description, start_date, end_date, timezone, status, privacy_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, userID, seriesID, trip.Title, trip.Description, trip.StartDate, trip.EndDate,
		trip.Timezone, trip.Status, trip.PrivacyLevel).Scan(&tripID)
	if err != nil {
		return fmt.Errorf("restoring trip %q: %w", trip.Title, err)
	}

	stats.TripsImported++

	if err := s.restoreLocations(ctx, tx, tripID, trip, remap, stats); err != nil {
		return err
	}

	if opts.ImportPhotos {
		for _, photo := range trip.Photos {
			var newID int64

			err := tx.QueryRow(ctx, `
				INSERT INTO photos (trip_id, url, caption, taken_at, immich_id)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, tripID, photo.URL, photo.Caption, photo.TakenAt, photo.ImmichID).Scan(&newID)
			if err != nil {
				return fmt.Errorf("restoring photo: %w", err)
			}

			remap.record(models.KindPhoto, photo.ID, newID)
			stats.PhotosImported++
		}
	}

	for _, a := range trip.Activities {
		var newID int64

		err := tx.QueryRow(ctx, `
			INSERT INTO activities (trip_id, name, category, date, duration_minutes, cost, currency, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, tripID, a.Name, a.Category, a.Date, a.DurationMinutes, a.Cost, a.Currency, a.Notes).Scan(&newID)
		if err != nil {
			return fmt.Errorf("restoring activity %q: %w", a.Name, err)
		}

		remap.record(models.KindActivity, a.ID, newID)
		stats.ActivitiesImported++
	}

	if err := s.restoreTransportation(ctx, tx, tripID, trip, remap, stats); err != nil {
		return err
	}

	for _, l := range trip.Lodging {
		var newID int64

		err := tx.QueryRow(ctx, `
			INSERT INTO lodging (trip_id, name, address, check_in, check_out, cost, confirmation_code, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, tripID, l.Name, l.Address, l.CheckIn, l.CheckOut, l.Cost, l.ConfirmationCode, l.Notes).Scan(&newID)
		if err != nil {
			return fmt.Errorf("restoring lodging %q: %w", l.Name, err)
		}

		remap.record(models.KindLodging, l.ID, newID)
		stats.LodgingImported++
	}

	for _, j := range trip.JournalEntries {
		var newID int64

		err := tx.QueryRow(ctx, `
			INSERT INTO journal_entries (trip_id, title, content, entry_date, mood)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, tripID, j.Title, j.Content, j.EntryDate, j.Mood).Scan(&newID)
		if err != nil {
			return fmt.Errorf("restoring journal entry: %w", err)
		}

		remap.record(models.KindJournalEntry, j.ID, newID)
		stats.JournalEntriesImported++
	}

	if err := s.restorePhotoAlbums(ctx, tx, tripID, trip, remap, stats); err != nil {
		return err
	}

	for _, w := range trip.WeatherData {
		_, err := tx.Exec(ctx, `
			INSERT INTO weather_data (trip_id, date, temperature_high, temperature_low, conditions, humidity, precipitation)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, tripID, w.Date, w.TemperatureHigh, w.TemperatureLow, w.Conditions, w.Humidity, w.Precipitation)
		if err != nil {
			return fmt.Errorf("restoring weather data: %w", err)
		}

		stats.WeatherImported++
	}

	if err := s.restoreTripAssociations(ctx, tx, userID, tripID, trip, remap, stats); err != nil {
		return err
	}

	for i := range trip.Checklists {
		if err := s.insertChecklist(ctx, tx, userID, &tripID, &trip.Checklists[i]); err != nil {
			return err
		}

		stats.ChecklistsImported++
	}

	for _, code := range trip.TripLanguages {
		_, err := tx.Exec(ctx, `
			INSERT INTO trip_languages (trip_id, language_code)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, tripID, code)
		if err != nil {
			return fmt.Errorf("restoring trip language %q: %w", code, err)
		}

		stats.TripLanguagesImported++
	}

	for _, link := range trip.EntityLinks {
		sourceID, targetID, ok := remap.resolveLink(link)
		if !ok {
			// Dangling endpoint, unknown kind, or a photo skipped by
			// the import options. The link is dropped, not fatal.
			stats.EntityLinksSkipped++

			s.Log.WithFields(map[string]any{
				"trip_id":     tripID,
				"source_type": link.SourceType,
				"source_id":   link.SourceID,
				"target_type": link.TargetType,
				"target_id":   link.TargetID,
			}).Warn("skipping unresolvable entity link")

			continue
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO entity_links (trip_id, source_type, source_id, target_type, target_id, relationship)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, tripID, link.SourceType, sourceID, link.TargetType, targetID, link.Relationship)
		if err != nil {
			return fmt.Errorf("restoring entity link: %w", err)
		}

		stats.EntityLinksImported++
	}

	return nil
}

// restoreLocations rebuilds the location tree. Locations may reference a
// parent declared later in the document, so insertion runs in passes: each
// pass takes every location whose parent is already remapped. No progress
// on a pass means a reference cycle or a parent the document never declares.
func (s *RestoreStore) restoreLocations(ctx context.Context, tx pgx.Tx, tripID int64, trip *models.BackupTrip, remap *remapTable, stats *models.RestoreStats) error {
	pending := make([]*models.BackupLocation, 0, len(trip.Locations))
	for i := range trip.Locations {
		pending = append(pending, &trip.Locations[i])
	}

	for len(pending) > 0 {
		next := pending[:0]
		progressed := false

		for _, loc := range pending {
			var parentID *int64

			if loc.ParentID != nil {
				newParent, ok := remap.lookup(models.KindLocation, *loc.ParentID)
				if !ok {
					next = append(next, loc)
					continue
				}

				parentID = &newParent
			}

			var newID int64

			err := tx.QueryRow(ctx, `
				INSERT INTO locations (trip_id, parent_id, name, latitude, longitude, category, visit_date, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id
			`, tripID, parentID, loc.Name, loc.Latitude, loc.Longitude,
				loc.Category, loc.VisitDate, loc.Notes).Scan(&newID)
			if err != nil {
				return fmt.Errorf("restoring location %q: %w", loc.Name, err)
			}

			remap.record(models.KindLocation, loc.ID, newID)
			stats.LocationsImported++
			progressed = true
		}

		if !progressed {
			return fmt.Errorf("location %q references unknown parent %d", next[0].Name, *next[0].ParentID)
		}

		pending = next
	}

	return nil
}

func (s *RestoreStore) restoreTransportation(ctx context.Context, tx pgx.Tx, tripID int64, trip *models.BackupTrip, remap *remapTable, stats *models.RestoreStats) error {
	for _, tr := range trip.Transportation {
		var newID int64

		err := tx.QueryRow(ctx, `
			INSERT INTO transportation (trip_id, type, carrier, origin, destination, departure_time, arrival_time, cost, confirmation_code)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, tripID, tr.Type, tr.Carrier, tr.Origin, tr.Destination,
			tr.DepartureTime, tr.ArrivalTime, tr.Cost, tr.ConfirmationCode).Scan(&newID)
		if err != nil {
			return fmt.Errorf("restoring transportation: %w", err)
		}

		if f := tr.FlightTracking; f != nil {
			_, err := tx.Exec(ctx, `
				INSERT INTO flight_tracking (transportation_id, flight_number, airline_code, departure_airport, arrival_airport, status)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, newID, f.FlightNumber, f.AirlineCode, f.DepartureAirport, f.ArrivalAirport, f.Status)
			if err != nil {
				return fmt.Errorf("restoring flight tracking %q: %w", f.FlightNumber, err)
			}
		}

		remap.record(models.KindTransportation, tr.ID, newID)
		stats.TransportationImported++
	}

	return nil
}

// restorePhotoAlbums creates albums and their photo assignments. Assignments
// whose photo is not in the remap table (skipped import, dangling reference)
// are dropped silently.
func (s *RestoreStore) restorePhotoAlbums(ctx context.Context, tx pgx.Tx, tripID int64, trip *models.BackupTrip, remap *remapTable, stats *models.RestoreStats) error {
	for _, album := range trip.PhotoAlbums {
		var newID int64

		err := tx.QueryRow(ctx, `
			INSERT INTO photo_albums (trip_id, name, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`, tripID, album.Name, album.Description).Scan(&newID)
		if err != nil {
			return fmt.Errorf("restoring photo album %q: %w", album.Name, err)
		}

		remap.record(models.KindPhotoAlbum, album.ID, newID)
		stats.PhotoAlbumsImported++

		position := 0

		for _, oldPhotoID := range album.PhotoIDs {
			photoID, ok := remap.lookup(models.KindPhoto, oldPhotoID)
			if !ok {
				continue
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO album_photos (album_id, photo_id, position)
				VALUES ($1, $2, $3)
			`, newID, photoID, position)
			if err != nil {
				return fmt.Errorf("restoring album photo: %w", err)
			}

			position++
		}
	}

	return nil
}

// restoreTripAssociations attaches tags and companions by name. Names the
// document's top-level collections never declared are created on the fly so
// a trip never silently loses a label; those rows count toward tagsImported
// and companionsImported like declared ones.
func (s *RestoreStore) restoreTripAssociations(ctx context.Context, tx pgx.Tx, userID string, tripID int64, trip *models.BackupTrip, remap *remapTable, stats *models.RestoreStats) error {
	for _, name := range trip.Tags {
		tagID, ok := remap.tagsByName[name]
		if !ok {
			id, err := s.upsertTag(ctx, tx, userID, models.BackupTag{Name: name})
			if err != nil {
				return err
			}

			remap.tagsByName[name] = id
			tagID = id
			stats.TagsImported++
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO trip_tags (trip_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, tripID, tagID)
		if err != nil {
			return fmt.Errorf("attaching tag %q: %w", name, err)
		}
	}

	for _, name := range trip.Companions {
		companionID, ok := remap.companionsByName[name]
		if !ok {
			id, err := s.upsertCompanion(ctx, tx, userID, models.BackupCompanion{Name: name})
			if err != nil {
				return err
			}

			remap.companionsByName[name] = id
			companionID = id
			stats.CompanionsImported++
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO trip_companions (trip_id, companion_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, tripID, companionID)
		if err != nil {
			return fmt.Errorf("attaching companion %q: %w", name, err)
		}
	}

	return nil
}
