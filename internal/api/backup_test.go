package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/waylog/waylog/internal/api"
	"github.com/waylog/waylog/internal/models"
)

func TestBackupCreate_SetsAttachmentHeader(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewBackupHandler(&mockBackupRepo{}, testLogger())
	r.POST("/backup/create", h.Create)

	w := doRequest(r, http.MethodPost, "/backup/create", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename=waylog-backup-") || !strings.HasSuffix(cd, ".json") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	var doc models.BackupDocument
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if doc.Version != models.BackupVersionCurrent {
		t.Errorf("version = %q, want %q", doc.Version, models.BackupVersionCurrent)
	}
}

func TestBackupCreate_ServiceError(t *testing.T) {
	t.Parallel()

	repo := &mockBackupRepo{
		createFn: func(_ context.Context, _ string) (*models.BackupDocument, error) {
			return nil, fmt.Errorf("db down")
		},
	}

	r := newTestRouter()
	h := api.NewBackupHandler(repo, testLogger())
	r.POST("/backup/create", h.Create)

	w := doRequest(r, http.MethodPost, "/backup/create", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBackupRestore_DefaultsOptions(t *testing.T) {
	t.Parallel()

	var gotOpts models.RestoreOptions

	repo := &mockBackupRepo{
		restoreFn: func(_ context.Context, _ string, _ *models.BackupDocument, opts models.RestoreOptions) (*models.RestoreResult, error) {
			gotOpts = opts

			return &models.RestoreResult{Success: true}, nil
		},
	}

	r := newTestRouter()
	h := api.NewBackupHandler(repo, testLogger())
	r.POST("/backup/restore", h.Restore)

	body := `{"backupData":{"version":"1.2.0","user":{"username":"u","email":"e"}}}`

	w := doRequest(r, http.MethodPost, "/backup/restore", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotOpts.ClearExistingData {
		t.Error("clearExistingData should default to false")
	}

	if !gotOpts.ImportPhotos {
		t.Error("importPhotos should default to true")
	}
}

func TestBackupRestore_PassesOptions(t *testing.T) {
	t.Parallel()

	var gotOpts models.RestoreOptions

	repo := &mockBackupRepo{
		restoreFn: func(_ context.Context, _ string, _ *models.BackupDocument, opts models.RestoreOptions) (*models.RestoreResult, error) {
			gotOpts = opts

			return &models.RestoreResult{Success: true}, nil
		},
	}

	r := newTestRouter()
	h := api.NewBackupHandler(repo, testLogger())
	r.POST("/backup/restore", h.Restore)

	body := `{
		"backupData": {"version": "1.0.0"},
		"options": {"clearExistingData": true, "importPhotos": false}
	}`

	w := doRequest(r, http.MethodPost, "/backup/restore", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if !gotOpts.ClearExistingData || gotOpts.ImportPhotos {
		t.Errorf("opts = %+v, want clear=true importPhotos=false", gotOpts)
	}
}

func TestBackupRestore_MissingBody(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewBackupHandler(&mockBackupRepo{}, testLogger())
	r.POST("/backup/restore", h.Restore)

	w := doRequest(r, http.MethodPost, "/backup/restore", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBackupRestore_MissingVersion(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewBackupHandler(&mockBackupRepo{}, testLogger())
	r.POST("/backup/restore", h.Restore)

	w := doRequest(r, http.MethodPost, "/backup/restore", `{"backupData":{"user":{"username":"u"}}}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBackupRestore_IncompatibleVersion(t *testing.T) {
	t.Parallel()

	repo := &mockBackupRepo{
		restoreFn: func(_ context.Context, _ string, doc *models.BackupDocument, _ models.RestoreOptions) (*models.RestoreResult, error) {
			return nil, fmt.Errorf("%w: %q", models.ErrIncompatibleVersion, doc.Version)
		},
	}

	r := newTestRouter()
	h := api.NewBackupHandler(repo, testLogger())
	r.POST("/backup/restore", h.Restore)

	w := doRequest(r, http.MethodPost, "/backup/restore", `{"backupData":{"version":"0.9.0"}}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), "incompatible backup version") {
		t.Errorf("body should name the version problem: %s", w.Body.String())
	}
}

func TestBackupInfo(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewBackupHandler(&mockBackupRepo{}, testLogger())
	r.GET("/backup/info", h.Info)

	w := doRequest(r, http.MethodGet, "/backup/info", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var info models.BackupInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if info.CurrentVersion != models.BackupVersionCurrent {
		t.Errorf("currentVersion = %q", info.CurrentVersion)
	}

	if len(info.SupportedVersions) == 0 {
		t.Error("supportedVersions should not be empty")
	}

	if len(info.SupportedFormats) != 1 || info.SupportedFormats[0] != "json" {
		t.Errorf("supportedFormats = %v, want [json]", info.SupportedFormats)
	}
}
