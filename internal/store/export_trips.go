package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/waylog/waylog/internal/models"
)

// exportTrips fills doc.Trips with every trip and its embedded children.
// Each child table is read once with a join against trips and distributed
// in memory, so the fan-out stays at one query per table.
func (s *ExportStore) exportTrips(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument) error {
	byTrip := map[int64]int{}

	rows, err := tx.Query(ctx, `
		SELECT id, series_id, title, description, start_date, end_date, timezone, status, privacy_level
		FROM trips
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("exporting trips: %w", err)
	}

	var tripIDs []int64

	for rows.Next() {
		var (
			id int64
			t  models.BackupTrip
		)
		if err := rows.Scan(&id, &t.SeriesID, &t.Title, &t.Description,
			&t.StartDate, &t.EndDate, &t.Timezone, &t.Status, &t.PrivacyLevel); err != nil {
			rows.Close()
			return fmt.Errorf("scanning trip: %w", err)
		}

		t.Locations = []models.BackupLocation{}
		t.Photos = []models.BackupPhoto{}
		t.Activities = []models.BackupActivity{}
		t.Transportation = []models.BackupTransportation{}
		t.Lodging = []models.BackupLodging{}
		t.JournalEntries = []models.BackupJournalEntry{}
		t.PhotoAlbums = []models.BackupPhotoAlbum{}
		t.WeatherData = []models.BackupWeatherData{}
		t.Tags = []string{}
		t.Companions = []string{}
		t.Checklists = []models.BackupChecklist{}
		t.EntityLinks = []models.BackupEntityLink{}
		t.TripLanguages = []string{}

		byTrip[id] = len(doc.Trips)
		doc.Trips = append(doc.Trips, t)
		tripIDs = append(tripIDs, id)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating trips: %w", err)
	}

	if len(tripIDs) == 0 {
		return nil
	}

	steps := []func(context.Context, pgx.Tx, *models.BackupDocument, map[int64]int) error{
		s.exportLocations,
		s.exportPhotos,
		s.exportActivities,
		s.exportTransportation,
		s.exportLodging,
		s.exportJournalEntries,
		s.exportPhotoAlbums,
		s.exportWeatherData,
		s.exportTripAssociations,
		s.exportEntityLinks,
		s.exportTripLanguages,
	}

	for _, step := range steps {
		if err := step(ctx, tx, doc, byTrip); err != nil {
			return err
		}
	}

	// Trip-level checklists share the top-level exporter.
	lists, ownerIDs, err := s.exportChecklistsByTrip(ctx, tx, true)
	if err != nil {
		return err
	}

	for i, list := range lists {
		if idx, ok := byTrip[ownerIDs[i]]; ok {
			doc.Trips[idx].Checklists = append(doc.Trips[idx].Checklists, list)
		}
	}

	return nil
}

// userTripsJoin scopes a child-table query to the exporting user's trips.
const userTripsJoin = `JOIN trips t ON t.id = x.trip_id
		AND t.user_id = current_setting('app.user_id')::uuid`

func (s *ExportStore) exportLocations(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.id, x.parent_id, x.name, x.latitude, x.longitude,
		       x.category, x.visit_date, x.notes
		FROM locations x `+userTripsJoin+`
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			l      models.BackupLocation
		)
		if err := rows.Scan(&tripID, &l.ID, &l.ParentID, &l.Name, &l.Latitude,
			&l.Longitude, &l.Category, &l.VisitDate, &l.Notes); err != nil {
			return fmt.Errorf("scanning location: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].Locations = append(doc.Trips[idx].Locations, l)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating locations: %w", err)
	}

	return nil
}

func (s *ExportStore) exportPhotos(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.id, x.url, x.caption, x.taken_at, x.immich_id
		FROM photos x `+userTripsJoin+`
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting photos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			p      models.BackupPhoto
		)
		if err := rows.Scan(&tripID, &p.ID, &p.URL, &p.Caption, &p.TakenAt, &p.ImmichID); err != nil {
			return fmt.Errorf("scanning photo: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].Photos = append(doc.Trips[idx].Photos, p)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating photos: %w", err)
	}

	return nil
}

func (s *ExportStore) exportActivities(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.id, x.name, x.category, x.date, x.duration_minutes,
		       x.cost::float8, x.currency, x.notes
		FROM activities x `+userTripsJoin+`
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			a      models.BackupActivity
		)
		if err := rows.Scan(&tripID, &a.ID, &a.Name, &a.Category, &a.Date,
			&a.DurationMinutes, &a.Cost, &a.Currency, &a.Notes); err != nil {
			return fmt.Errorf("scanning activity: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].Activities = append(doc.Trips[idx].Activities, a)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating activities: %w", err)
	}

	return nil
}

func (s *ExportStore) exportTransportation(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.id, x.type, x.carrier, x.origin, x.destination,
		       x.departure_time, x.arrival_time, x.cost::float8, x.confirmation_code,
		       f.flight_number, f.airline_code, f.departure_airport, f.arrival_airport, f.status
		FROM transportation x `+userTripsJoin+`
		LEFT JOIN flight_tracking f ON f.transportation_id = x.id
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting transportation: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			tr     models.BackupTransportation

			flightNumber, airline, depAirport, arrAirport, status *string
		)
		if err := rows.Scan(&tripID, &tr.ID, &tr.Type, &tr.Carrier, &tr.Origin,
			&tr.Destination, &tr.DepartureTime, &tr.ArrivalTime, &tr.Cost, &tr.ConfirmationCode,
			&flightNumber, &airline, &depAirport, &arrAirport, &status); err != nil {
			return fmt.Errorf("scanning transportation: %w", err)
		}

		if flightNumber != nil {
			tr.FlightTracking = &models.BackupFlightTracking{
				FlightNumber:     *flightNumber,
				AirlineCode:      deref(airline),
				DepartureAirport: deref(depAirport),
				ArrivalAirport:   deref(arrAirport),
				Status:           deref(status),
			}
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].Transportation = append(doc.Trips[idx].Transportation, tr)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating transportation: %w", err)
	}

	return nil
}

func (s *ExportStore) exportLodging(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.id, x.name, x.address, x.check_in, x.check_out,
		       x.cost::float8, x.confirmation_code, x.notes
		FROM lodging x `+userTripsJoin+`
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting lodging: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			l      models.BackupLodging
		)
		if err := rows.Scan(&tripID, &l.ID, &l.Name, &l.Address, &l.CheckIn,
			&l.CheckOut, &l.Cost, &l.ConfirmationCode, &l.Notes); err != nil {
			return fmt.Errorf("scanning lodging: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].Lodging = append(doc.Trips[idx].Lodging, l)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating lodging: %w", err)
	}

	return nil
}

func (s *ExportStore) exportJournalEntries(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.id, x.title, x.content, x.entry_date, x.mood
		FROM journal_entries x `+userTripsJoin+`
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting journal entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			j      models.BackupJournalEntry
		)
		if err := rows.Scan(&tripID, &j.ID, &j.Title, &j.Content, &j.EntryDate, &j.Mood); err != nil {
			return fmt.Errorf("scanning journal entry: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].JournalEntries = append(doc.Trips[idx].JournalEntries, j)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating journal entries: %w", err)
	}

	return nil
}

func (s *ExportStore) exportPhotoAlbums(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	albumIdx := map[int64][2]int{} // album ID -> (trip index, album index)

	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.id, x.name, x.description
		FROM photo_albums x `+userTripsJoin+`
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting photo albums: %w", err)
	}

	for rows.Next() {
		var (
			tripID int64
			a      models.BackupPhotoAlbum
		)
		if err := rows.Scan(&tripID, &a.ID, &a.Name, &a.Description); err != nil {
			rows.Close()
			return fmt.Errorf("scanning photo album: %w", err)
		}

		a.PhotoIDs = []int64{}

		if idx, ok := byTrip[tripID]; ok {
			albumIdx[a.ID] = [2]int{idx, len(doc.Trips[idx].PhotoAlbums)}
			doc.Trips[idx].PhotoAlbums = append(doc.Trips[idx].PhotoAlbums, a)
		}
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating photo albums: %w", err)
	}

	rows, err = tx.Query(ctx, `
		SELECT ap.album_id, ap.photo_id
		FROM album_photos ap
		JOIN photo_albums x ON x.id = ap.album_id `+userTripsJoin+`
		ORDER BY ap.album_id, ap.position, ap.photo_id
	`)
	if err != nil {
		return fmt.Errorf("exporting album photos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var albumID, photoID int64
		if err := rows.Scan(&albumID, &photoID); err != nil {
			return fmt.Errorf("scanning album photo: %w", err)
		}

		if pos, ok := albumIdx[albumID]; ok {
			album := &doc.Trips[pos[0]].PhotoAlbums[pos[1]]
			album.PhotoIDs = append(album.PhotoIDs, photoID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating album photos: %w", err)
	}

	return nil
}

func (s *ExportStore) exportWeatherData(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.date, x.temperature_high::float8, x.temperature_low::float8,
		       x.conditions, x.humidity, x.precipitation::float8
		FROM weather_data x `+userTripsJoin+`
		ORDER BY x.trip_id, x.date
	`)
	if err != nil {
		return fmt.Errorf("exporting weather data: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			w      models.BackupWeatherData
		)
		if err := rows.Scan(&tripID, &w.Date, &w.TemperatureHigh, &w.TemperatureLow,
			&w.Conditions, &w.Humidity, &w.Precipitation); err != nil {
			return fmt.Errorf("scanning weather data: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].WeatherData = append(doc.Trips[idx].WeatherData, w)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating weather data: %w", err)
	}

	return nil
}

// exportTripAssociations fills the by-name tag and companion references.
func (s *ExportStore) exportTripAssociations(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT tt.trip_id, tg.name
		FROM trip_tags tt
		JOIN tags tg ON tg.id = tt.tag_id
		JOIN trips t ON t.id = tt.trip_id AND t.user_id = current_setting('app.user_id')::uuid
		ORDER BY tt.trip_id, tg.name
	`)
	if err != nil {
		return fmt.Errorf("exporting trip tags: %w", err)
	}

	for rows.Next() {
		var (
			tripID int64
			name   string
		)
		if err := rows.Scan(&tripID, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scanning trip tag: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].Tags = append(doc.Trips[idx].Tags, name)
		}
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating trip tags: %w", err)
	}

	rows, err = tx.Query(ctx, `
		SELECT tc.trip_id, c.name
		FROM trip_companions tc
		JOIN companions c ON c.id = tc.companion_id
		JOIN trips t ON t.id = tc.trip_id AND t.user_id = current_setting('app.user_id')::uuid
		ORDER BY tc.trip_id, c.name
	`)
	if err != nil {
		return fmt.Errorf("exporting trip companions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			name   string
		)
		if err := rows.Scan(&tripID, &name); err != nil {
			return fmt.Errorf("scanning trip companion: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].Companions = append(doc.Trips[idx].Companions, name)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating trip companions: %w", err)
	}

	return nil
}

func (s *ExportStore) exportEntityLinks(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.source_type, x.source_id, x.target_type, x.target_id, x.relationship
		FROM entity_links x `+userTripsJoin+`
		ORDER BY x.trip_id, x.id
	`)
	if err != nil {
		return fmt.Errorf("exporting entity links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			l      models.BackupEntityLink
		)
		if err := rows.Scan(&tripID, &l.SourceType, &l.SourceID, &l.TargetType, &l.TargetID, &l.Relationship); err != nil {
			return fmt.Errorf("scanning entity link: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].EntityLinks = append(doc.Trips[idx].EntityLinks, l)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating entity links: %w", err)
	}

	return nil
}

func (s *ExportStore) exportTripLanguages(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument, byTrip map[int64]int) error {
	rows, err := tx.Query(ctx, `
		SELECT x.trip_id, x.language_code
		FROM trip_languages x `+userTripsJoin+`
		ORDER BY x.trip_id, x.language_code
	`)
	if err != nil {
		return fmt.Errorf("exporting trip languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int64
			code   string
		)
		if err := rows.Scan(&tripID, &code); err != nil {
			return fmt.Errorf("scanning trip language: %w", err)
		}

		if idx, ok := byTrip[tripID]; ok {
			doc.Trips[idx].TripLanguages = append(doc.Trips[idx].TripLanguages, code)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating trip languages: %w", err)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
