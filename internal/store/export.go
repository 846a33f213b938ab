package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/waylog/waylog/internal/models"
)

// ExportStore reads a user's full data graph for backup export.
// All reads for one export share a single read-only transaction, so the
// document is a consistent snapshot.
type ExportStore struct {
	Base
}

// NewExportStore creates a new ExportStore.
func NewExportStore(base Base) *ExportStore {
	return &ExportStore{Base: base}
}

// ExportUserData reads every row owned directly or transitively by the user
// and assembles the backup document body (version and exportDate are filled
// in by the service). Database IDs double as backup-local IDs.
func (s *ExportStore) ExportUserData(ctx context.Context, userID string) (*models.BackupDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, restoreQueryTimeout)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	doc := &models.BackupDocument{
		Tags:               []models.BackupTag{},
		Companions:         []models.BackupCompanion{},
		LocationCategories: []models.BackupLocationCategory{},
		Checklists:         []models.BackupChecklist{},
		Trips:              []models.BackupTrip{},
	}

	if err := s.exportUser(ctx, tx, userID, doc); err != nil {
		return nil, err
	}

	if err := s.exportCollections(ctx, tx, doc); err != nil {
		return nil, err
	}

	if err := s.exportTrips(ctx, tx, doc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing export: %w", err)
	}

	return doc, nil
}

func (s *ExportStore) exportUser(ctx context.Context, tx pgx.Tx, userID string, doc *models.BackupDocument) error {
	var (
		categoriesRaw []byte
		immichKeyEnc  string
		weatherKeyEnc string
	)

	err := tx.QueryRow(ctx, `
		SELECT username, email, timezone, activity_categories,
		       immich_api_url, immich_api_key, weather_api_key
		FROM users
		WHERE id = current_setting('app.user_id')::uuid
	`).Scan(
		&doc.User.Username, &doc.User.Email, &doc.User.Timezone, &categoriesRaw,
		&doc.User.ImmichAPIURL, &immichKeyEnc, &weatherKeyEnc,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrUserNotFound
		}

		return fmt.Errorf("exporting user profile: %w", err)
	}

	if len(categoriesRaw) > 0 {
		if err := json.Unmarshal(categoriesRaw, &doc.User.ActivityCategories); err != nil {
			return fmt.Errorf("unmarshalling activity categories: %w", err)
		}
	}

	// Secrets travel in plaintext so the document restores on another instance.
	if doc.User.ImmichAPIKey, err = s.decryptSecret(ctx, userID, immichKeyEnc); err != nil {
		return fmt.Errorf("exporting immich key: %w", err)
	}

	if doc.User.WeatherAPIKey, err = s.decryptSecret(ctx, userID, weatherKeyEnc); err != nil {
		return fmt.Errorf("exporting weather key: %w", err)
	}

	return nil
}

// exportCollections fills the top-level user-scoped collections.
func (s *ExportStore) exportCollections(ctx context.Context, tx pgx.Tx, doc *models.BackupDocument) error {
	rows, err := tx.Query(ctx, `
		SELECT name, color, text_color FROM tags
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY name
	`)
	if err != nil {
		return fmt.Errorf("exporting tags: %w", err)
	}

	for rows.Next() {
		var t models.BackupTag
		if err := rows.Scan(&t.Name, &t.Color, &t.TextColor); err != nil {
			rows.Close()
			return fmt.Errorf("scanning tag: %w", err)
		}

		doc.Tags = append(doc.Tags, t)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tags: %w", err)
	}

	rows, err = tx.Query(ctx, `
		SELECT name, email, phone, relationship, notes FROM companions
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY name
	`)
	if err != nil {
		return fmt.Errorf("exporting companions: %w", err)
	}

	for rows.Next() {
		var c models.BackupCompanion
		if err := rows.Scan(&c.Name, &c.Email, &c.Phone, &c.Relationship, &c.Notes); err != nil {
			rows.Close()
			return fmt.Errorf("scanning companion: %w", err)
		}

		doc.Companions = append(doc.Companions, c)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating companions: %w", err)
	}

	rows, err = tx.Query(ctx, `
		SELECT name, icon, color, is_default FROM location_categories
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY name
	`)
	if err != nil {
		return fmt.Errorf("exporting location categories: %w", err)
	}

	for rows.Next() {
		var c models.BackupLocationCategory
		if err := rows.Scan(&c.Name, &c.Icon, &c.Color, &c.IsDefault); err != nil {
			rows.Close()
			return fmt.Errorf("scanning location category: %w", err)
		}

		doc.LocationCategories = append(doc.LocationCategories, c)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating location categories: %w", err)
	}

	checklists, err := s.exportChecklists(ctx, tx, false)
	if err != nil {
		return err
	}
	doc.Checklists = checklists

	rows, err = tx.Query(ctx, `
		SELECT name, document_type, expiry_date, file_path, notes FROM travel_documents
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY name
	`)
	if err != nil {
		return fmt.Errorf("exporting travel documents: %w", err)
	}

	for rows.Next() {
		var d models.BackupTravelDocument
		if err := rows.Scan(&d.Name, &d.DocumentType, &d.ExpiryDate, &d.FilePath, &d.Notes); err != nil {
			rows.Close()
			return fmt.Errorf("scanning travel document: %w", err)
		}

		doc.TravelDocuments = append(doc.TravelDocuments, d)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating travel documents: %w", err)
	}

	rows, err = tx.Query(ctx, `
		SELECT id, name, description FROM trip_series
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("exporting trip series: %w", err)
	}

	for rows.Next() {
		var ts models.BackupTripSeries
		if err := rows.Scan(&ts.ID, &ts.Name, &ts.Description); err != nil {
			rows.Close()
			return fmt.Errorf("scanning trip series: %w", err)
		}

		doc.TripSeries = append(doc.TripSeries, ts)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating trip series: %w", err)
	}

	return nil
}

// exportChecklists reads either top-level (tripLevel=false) or per-trip
// checklists including nested items. For trip-level checklists the caller
// distributes the result by trip ID.
func (s *ExportStore) exportChecklists(ctx context.Context, tx pgx.Tx, tripLevel bool) ([]models.BackupChecklist, error) {
	lists, _, err := s.exportChecklistsByTrip(ctx, tx, tripLevel)
	return lists, err
}

// exportChecklistsByTrip returns checklists plus a parallel slice of owning
// trip IDs (zero for top-level lists).
func (s *ExportStore) exportChecklistsByTrip(ctx context.Context, tx pgx.Tx, tripLevel bool) ([]models.BackupChecklist, []int64, error) {
	cond := "c.trip_id IS NULL"
	if tripLevel {
		cond = "c.trip_id IS NOT NULL"
	}

	rows, err := tx.Query(ctx, `
		SELECT c.id, COALESCE(c.trip_id, 0), c.name, c.description, c.type
		FROM checklists c
		WHERE c.user_id = current_setting('app.user_id')::uuid AND `+cond+`
		ORDER BY c.id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("exporting checklists: %w", err)
	}

	var (
		lists   []models.BackupChecklist
		listIDs []int64
		tripIDs []int64
	)

	for rows.Next() {
		var (
			id     int64
			tripID int64
			c      models.BackupChecklist
		)
		if err := rows.Scan(&id, &tripID, &c.Name, &c.Description, &c.Type); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scanning checklist: %w", err)
		}

		c.Items = []models.BackupChecklistItem{}
		lists = append(lists, c)
		listIDs = append(listIDs, id)
		tripIDs = append(tripIDs, tripID)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating checklists: %w", err)
	}

	for i, id := range listIDs {
		itemRows, err := tx.Query(ctx, `
			SELECT name, is_checked FROM checklist_items
			WHERE checklist_id = $1
			ORDER BY position, id
		`, id)
		if err != nil {
			return nil, nil, fmt.Errorf("exporting checklist items: %w", err)
		}

		for itemRows.Next() {
			var item models.BackupChecklistItem
			if err := itemRows.Scan(&item.Name, &item.IsChecked); err != nil {
				itemRows.Close()
				return nil, nil, fmt.Errorf("scanning checklist item: %w", err)
			}

			lists[i].Items = append(lists[i].Items, item)
		}
		itemRows.Close()

		if err := itemRows.Err(); err != nil {
			return nil, nil, fmt.Errorf("iterating checklist items: %w", err)
		}
	}

	return lists, tripIDs, nil
}
