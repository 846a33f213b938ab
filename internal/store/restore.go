package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/waylog/waylog/internal/models"
)

// RestoreStore rebuilds a user's data graph from a backup document.
//
// A restore runs as one read-write transaction: either the whole document is
// imported or nothing is. Backup-local IDs are translated to fresh database
// IDs through a remapTable built as rows are inserted, so parents are always
// created before the children that reference them.
type RestoreStore struct {
	Base
}

// NewRestoreStore creates a new RestoreStore.
func NewRestoreStore(base Base) *RestoreStore {
	return &RestoreStore{Base: base}
}

// Restore imports the document into the user's account. The caller has
// already validated the document version; caps tells the engine which
// optional sections the document carries.
func (s *RestoreStore) Restore(ctx context.Context, userID string, doc *models.BackupDocument, caps models.BackupCapabilities, opts models.RestoreOptions) (*models.RestoreStats, error) {
	ctx, cancel := context.WithTimeout(ctx, restoreQueryTimeout)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if opts.ClearExistingData {
		if err := s.clearExistingData(ctx, tx, caps); err != nil {
			return nil, err
		}
	}

	stats := &models.RestoreStats{}
	remap := newRemapTable()

	if err := s.restoreUser(ctx, tx, userID, &doc.User); err != nil {
		return nil, err
	}

	if err := s.restoreCollections(ctx, tx, userID, doc, caps, remap, stats); err != nil {
		return nil, err
	}

	for i := range doc.Trips {
		if err := s.restoreTrip(ctx, tx, userID, &doc.Trips[i], remap, opts, stats); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing restore: %w", err)
	}

	s.notify("trips", "restore", userID)

	s.Log.WithFields(map[string]any{
		"user_id":              userID,
		"trips_imported":       stats.TripsImported,
		"entity_links_skipped": stats.EntityLinksSkipped,
	}).Info("restore completed")

	return stats, nil
}

// clearExistingData removes the user's current data before an import.
// Trip children go with their trips via ON DELETE CASCADE. Sections the
// document's version cannot carry are left untouched: a 1.0.0 document must
// not wipe travel documents or trip series it cannot replace.
func (s *RestoreStore) clearExistingData(ctx context.Context, tx pgx.Tx, caps models.BackupCapabilities) error {
	tables := []string{
		"trips",
		"tags",
		"companions",
		"location_categories",
		"checklists",
	}

	if caps.HasTravelDocuments {
		tables = append(tables, "travel_documents")
	}

	if caps.HasTripSeries {
		tables = append(tables, "trip_series")
	}

	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s WHERE user_id = current_setting('app.user_id')::uuid", table)
		if _, err := tx.Exec(ctx, query); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	return nil
}

// restoreUser overwrites the profile settings carried by the document.
// Username and email stay untouched: the document restores into an existing
// account, it does not rename it.
func (s *RestoreStore) restoreUser(ctx context.Context, tx pgx.Tx, userID string, user *models.BackupUser) error {
	categories, err := json.Marshal(user.ActivityCategories)
	if err != nil {
		return fmt.Errorf("marshalling activity categories: %w", err)
	}

	immichKey, err := s.encryptSecret(ctx, userID, user.ImmichAPIKey)
	if err != nil {
		return fmt.Errorf("restoring immich key: %w", err)
	}

	weatherKey, err := s.encryptSecret(ctx, userID, user.WeatherAPIKey)
	if err != nil {
		return fmt.Errorf("restoring weather key: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET timezone = $1, activity_categories = $2,
		    immich_api_url = $3, immich_api_key = $4, weather_api_key = $5,
		    updated_at = now()
		WHERE id = current_setting('app.user_id')::uuid
	`, user.Timezone, categories, user.ImmichAPIURL, immichKey, weatherKey)
	if err != nil {
		return fmt.Errorf("restoring user profile: %w", err)
	}

	return nil
}

// restoreCollections imports the top-level collections that trips reference:
// tags and companions (matched by name later), location categories,
// top-level checklists, and the version-gated sections.
func (s *RestoreStore) restoreCollections(ctx context.Context, tx pgx.Tx, userID string, doc *models.BackupDocument, caps models.BackupCapabilities, remap *remapTable, stats *models.RestoreStats) error {
	for _, tag := range doc.Tags {
		id, err := s.upsertTag(ctx, tx, userID, tag)
		if err != nil {
			return err
		}

		remap.tagsByName[tag.Name] = id
		stats.TagsImported++
	}

	for _, companion := range doc.Companions {
		id, err := s.upsertCompanion(ctx, tx, userID, companion)
		if err != nil {
			return err
		}

		remap.companionsByName[companion.Name] = id
		stats.CompanionsImported++
	}

	for _, cat := range doc.LocationCategories {
		_, err := tx.Exec(ctx, `
			INSERT INTO location_categories (user_id, name, icon, color, is_default)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, name) DO UPDATE
			SET icon = EXCLUDED.icon, color = EXCLUDED.color, is_default = EXCLUDED.is_default
		`, userID, cat.Name, cat.Icon, cat.Color, cat.IsDefault)
		if err != nil {
			return fmt.Errorf("restoring location category %q: %w", cat.Name, err)
		}

		stats.LocationCategoriesImported++
	}

	for i := range doc.Checklists {
		if err := s.insertChecklist(ctx, tx, userID, nil, &doc.Checklists[i]); err != nil {
			return err
		}

		stats.ChecklistsImported++
	}

	if caps.HasTravelDocuments {
		for _, d := range doc.TravelDocuments {
			_, err := tx.Exec(ctx, `
				INSERT INTO travel_documents (user_id, name, document_type, expiry_date, file_path, notes)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, userID, d.Name, d.DocumentType, d.ExpiryDate, d.FilePath, d.Notes)
			if err != nil {
				return fmt.Errorf("restoring travel document %q: %w", d.Name, err)
			}

			stats.TravelDocumentsImported++
		}
	}

	if caps.HasTripSeries {
		for _, series := range doc.TripSeries {
			var newID int64

			err := tx.QueryRow(ctx, `
				INSERT INTO trip_series (user_id, name, description)
				VALUES ($1, $2, $3)
				RETURNING id
			`, userID, series.Name, series.Description).Scan(&newID)
			if err != nil {
				return fmt.Errorf("restoring trip series %q: %w", series.Name, err)
			}

			remap.seriesByID[series.ID] = newID
			stats.TripSeriesImported++
		}
	}

	return nil
}

// upsertTag inserts a tag or refreshes an existing one of the same name.
// Restores without clearExistingData merge into the current tag set.
func (s *RestoreStore) upsertTag(ctx context.Context, tx pgx.Tx, userID string, tag models.BackupTag) (int64, error) {
	var id int64

	err := tx.QueryRow(ctx, `
		INSERT INTO tags (user_id, name, color, text_color)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, name) DO UPDATE
		SET color = EXCLUDED.color, text_color = EXCLUDED.text_color
		RETURNING id
	`, userID, tag.Name, tag.Color, tag.TextColor).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("restoring tag %q: %w", tag.Name, err)
	}

	return id, nil
}

func (s *RestoreStore) upsertCompanion(ctx context.Context, tx pgx.Tx, userID string, c models.BackupCompanion) (int64, error) {
	var id int64

	err := tx.QueryRow(ctx, `
		INSERT INTO companions (user_id, name, email, phone, relationship, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, name) DO UPDATE
		SET email = EXCLUDED.email, phone = EXCLUDED.phone,
		    relationship = EXCLUDED.relationship, notes = EXCLUDED.notes
		RETURNING id
	`, userID, c.Name, c.Email, c.Phone, c.Relationship, c.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("restoring companion %q: %w", c.Name, err)
	}

	return id, nil
}

// insertChecklist creates a checklist and its items. tripID is nil for
// top-level checklists.
func (s *RestoreStore) insertChecklist(ctx context.Context, tx pgx.Tx, userID string, tripID *int64, list *models.BackupChecklist) error {
	var listID int64

	err := tx.QueryRow(ctx, `
		INSERT INTO checklists (user_id, trip_id, name, description, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, tripID, list.Name, list.Description, list.Type).Scan(&listID)
	if err != nil {
		return fmt.Errorf("restoring checklist %q: %w", list.Name, err)
	}

	for pos, item := range list.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO checklist_items (checklist_id, name, is_checked, position)
			VALUES ($1, $2, $3, $4)
		`, listID, item.Name, item.IsChecked, pos)
		if err != nil {
			return fmt.Errorf("restoring checklist item %q: %w", item.Name, err)
		}
	}

	return nil
}
