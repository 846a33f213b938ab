package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/waylog/waylog/internal/models"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithAPIKey("test-key"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "0.3.0"})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
	if resp.Version != "0.3.0" {
		t.Errorf("got version %q, want 0.3.0", resp.Version)
	}
}

func TestStats(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/stats": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, StatsResponse{Trips: 12, JournalEntries: 80, Tags: 5})
		},
	})
	resp, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if resp.Trips != 12 {
		t.Errorf("got trips %d, want 12", resp.Trips)
	}
}

func TestTripsCRUD(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/trips": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{"trips": []Trip{{ID: 1, Title: "Lisbon"}}, "has_more": false})
		},
		"POST /api/v1/trips": func(w http.ResponseWriter, r *http.Request) {
			var req CreateTripRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 201, Trip{ID: 2, Title: req.Title, Status: "planning"})
		},
		"GET /api/v1/trips/1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, Trip{ID: 1, Title: "Lisbon"})
		},
		"PUT /api/v1/trips/1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, Trip{ID: 1, Title: "Lisbon", Status: "completed"})
		},
		"DELETE /api/v1/trips/1": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(204)
		},
	})

	ctx := context.Background()

	trips, hasMore, err := c.Trips.List(ctx, nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(trips) != 1 || hasMore {
		t.Errorf("List: got %d trips, hasMore=%v", len(trips), hasMore)
	}

	trip, err := c.Trips.Create(ctx, &CreateTripRequest{Title: "Porto"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if trip.Title != "Porto" {
		t.Errorf("Create: got title %q", trip.Title)
	}

	trip, err = c.Trips.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if trip.ID != 1 {
		t.Errorf("Get: got id %d", trip.ID)
	}

	status := "completed"
	trip, err = c.Trips.Update(ctx, 1, &UpdateTripRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if trip.Status != "completed" {
		t.Errorf("Update: got status %q", trip.Status)
	}

	if err := c.Trips.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	var gotRestore struct {
		BackupData *models.BackupDocument `json:"backupData"`
		Options    *RestoreOptions        `json:"options"`
	}

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/backup/create": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, models.BackupDocument{Version: models.BackupVersionCurrent})
		},
		"POST /api/v1/backup/restore": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotRestore) //nolint:errcheck
			jsonResponse(w, 200, models.RestoreResult{Success: true, Message: "Data restored successfully"})
		},
		"GET /api/v1/backup/info": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, models.BackupInfo{
				CurrentVersion:    models.BackupVersionCurrent,
				SupportedVersions: models.SupportedBackupVersions(),
			})
		},
	})

	ctx := context.Background()

	doc, err := c.Backup.Create(ctx)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if doc.Version != models.BackupVersionCurrent {
		t.Errorf("Create: got version %q", doc.Version)
	}

	clear := true
	result, err := c.Backup.Restore(ctx, doc, &RestoreOptions{ClearExistingData: &clear})
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if !result.Success {
		t.Error("Restore: expected success")
	}
	if gotRestore.BackupData == nil || gotRestore.BackupData.Version != doc.Version {
		t.Error("Restore: backupData not forwarded")
	}
	if gotRestore.Options == nil || gotRestore.Options.ClearExistingData == nil || !*gotRestore.Options.ClearExistingData {
		t.Error("Restore: options not forwarded")
	}

	info, err := c.Backup.Info(ctx)
	if err != nil {
		t.Fatalf("Info error: %v", err)
	}
	if len(info.SupportedVersions) == 0 {
		t.Error("Info: expected supported versions")
	}
}

func TestAPIError(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/trips/99": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]string{"code": "not_found", "message": "trip not found", "request_id": "req-1"})
		},
	})

	_, err := c.Trips.Get(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
}

func TestAuthHeaderSent(t *testing.T) {
	var gotAuth string

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/tags": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			jsonResponse(w, 200, map[string]any{"tags": []Tag{}})
		},
	})

	if _, err := c.Tags.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}
