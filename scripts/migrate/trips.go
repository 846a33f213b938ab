package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// legacyTrip represents one trip read from the legacy SQLite journal, with
// its child locations and journal entries attached.
type legacyTrip struct {
	ID          int64
	Title       string
	Description sql.NullString
	StartDate   sql.NullString
	EndDate     sql.NullString
	Timezone    sql.NullString
	Status      sql.NullString
	Locations   []legacyLocation
	Entries     []legacyEntry
}

// legacyLocation is a place visited on a legacy trip.
type legacyLocation struct {
	Name      string
	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64
	Category  sql.NullString
	VisitDate sql.NullString
	Notes     sql.NullString
}

// legacyEntry is a journal entry on a legacy trip.
type legacyEntry struct {
	Title     string
	Content   sql.NullString
	EntryDate sql.NullString
	Mood      sql.NullString
}

// readTrips reads all trips and their children from SQLite.
func readTrips(ctx context.Context, db *sql.DB) ([]legacyTrip, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, start_date, end_date, timezone, status
		 FROM trips ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []legacyTrip
	for rows.Next() {
		var t legacyTrip
		if err := rows.Scan(&t.ID, &t.Title, &t.Description,
			&t.StartDate, &t.EndDate, &t.Timezone, &t.Status); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range trips {
		if trips[i].Locations, err = readLocations(ctx, db, trips[i].ID); err != nil {
			return nil, fmt.Errorf("trip %d locations: %w", trips[i].ID, err)
		}
		if trips[i].Entries, err = readEntries(ctx, db, trips[i].ID); err != nil {
			return nil, fmt.Errorf("trip %d entries: %w", trips[i].ID, err)
		}
	}

	return trips, nil
}

func readLocations(ctx context.Context, db *sql.DB, tripID int64) ([]legacyLocation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, latitude, longitude, category, visit_date, notes
		 FROM locations WHERE trip_id = ? ORDER BY id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []legacyLocation
	for rows.Next() {
		var l legacyLocation
		if err := rows.Scan(&l.Name, &l.Latitude, &l.Longitude,
			&l.Category, &l.VisitDate, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

func readEntries(ctx context.Context, db *sql.DB, tripID int64) ([]legacyEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT title, content, entry_date, mood
		 FROM journal_entries WHERE trip_id = ? ORDER BY id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []legacyEntry
	for rows.Next() {
		var e legacyEntry
		if err := rows.Scan(&e.Title, &e.Content, &e.EntryDate, &e.Mood); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// insertTrips writes trips and their children into PostgreSQL. Locations with
// an empty name are skipped rather than failing the whole migration.
func insertTrips(ctx context.Context, tx pgx.Tx, trips []legacyTrip, userID string) (int, []skippedRecord) {
	var skipped []skippedRecord
	inserted := 0

	for _, t := range trips {
		var newID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO trips (user_id, title, description, start_date, end_date, timezone, status)
			 VALUES ($1, $2, $3, $4, $5, COALESCE($6, 'UTC'), COALESCE($7, 'completed'))
			 RETURNING id`,
			userID, t.Title, nullToEmpty(t.Description),
			parseNullTime(t.StartDate), parseNullTime(t.EndDate),
			nullOrNil(t.Timezone), nullOrNil(t.Status),
		).Scan(&newID)
		if err != nil {
			slog.Warn("skipping trip", "title", t.Title, "error", err)
			skipped = append(skipped, skippedRecord{Table: "trips", Name: t.Title, Reason: err.Error()})
			continue
		}
		inserted++

		for _, l := range t.Locations {
			if l.Name == "" {
				skipped = append(skipped, skippedRecord{Table: "locations", Name: "(empty)", Reason: "missing name"})
				continue
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO locations (trip_id, name, latitude, longitude, category, visit_date, notes)
				 VALUES ($1, $2, $3, $4, COALESCE($5, ''), $6, COALESCE($7, ''))`,
				newID, l.Name, nullFloatOrNil(l.Latitude), nullFloatOrNil(l.Longitude),
				nullOrNil(l.Category), parseNullTime(l.VisitDate), nullOrNil(l.Notes))
			if err != nil {
				skipped = append(skipped, skippedRecord{Table: "locations", Name: l.Name, Reason: err.Error()})
			}
		}

		for _, e := range t.Entries {
			_, err := tx.Exec(ctx,
				`INSERT INTO journal_entries (trip_id, title, content, entry_date, mood)
				 VALUES ($1, $2, COALESCE($3, ''), $4, COALESCE($5, ''))`,
				newID, e.Title, nullOrNil(e.Content), parseNullTime(e.EntryDate), nullOrNil(e.Mood))
			if err != nil {
				skipped = append(skipped, skippedRecord{Table: "journal_entries", Name: e.Title, Reason: err.Error()})
			}
		}
	}

	return inserted, skipped
}

// readSettings reads the legacy key/value settings table. A missing table is
// not an error; old journals without integrations simply have no settings.
func readSettings(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		slog.Info("no settings table in legacy journal")
		return nil, nil //nolint:nilerr // absence of settings is expected.
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// applySettings writes timezone and encrypted integration keys to the user row.
func applySettings(ctx context.Context, tx pgx.Tx, settings map[string]string, userID string, enc *encryptor) error {
	if len(settings) == 0 {
		return nil
	}

	if tz, ok := settings["timezone"]; ok && tz != "" {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET timezone = $1 WHERE id = $2`, tz, userID); err != nil {
			return fmt.Errorf("set timezone: %w", err)
		}
	}

	for key, column := range map[string]string{
		"immich_api_key":  "immich_api_key",
		"weather_api_key": "weather_api_key",
	} {
		val, ok := settings[key]
		if !ok || val == "" {
			continue
		}
		ct, err := enc.encrypt([]byte(val), userID)
		if err != nil {
			return fmt.Errorf("encrypt %s: %w", key, err)
		}
		query := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE id = $2`, column)
		if _, err := tx.Exec(ctx, query, ct, userID); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	if url, ok := settings["immich_api_url"]; ok && url != "" {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET immich_api_url = $1 WHERE id = $2`, url, userID); err != nil {
			return fmt.Errorf("set immich_api_url: %w", err)
		}
	}

	return nil
}
