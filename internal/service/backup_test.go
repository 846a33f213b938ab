package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/waylog/waylog/internal/models"
)

func TestCreateBackup_StampsVersionAndDate(t *testing.T) {
	svc := newBackupService(&mockExportStore{}, &mockRestoreStore{})

	doc, err := svc.CreateBackup(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	if doc.Version != models.BackupVersionCurrent {
		t.Errorf("Version = %q, want %q", doc.Version, models.BackupVersionCurrent)
	}

	if doc.ExportDate.IsZero() {
		t.Error("ExportDate should not be zero")
	}
}

func TestCreateBackup_StoreError(t *testing.T) {
	svc := newBackupService(&mockExportStore{err: errors.New("db down")}, &mockRestoreStore{})

	if _, err := svc.CreateBackup(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error from CreateBackup, got nil")
	}
}

func TestRestoreFromBackup_RejectsUnsupportedVersion(t *testing.T) {
	restore := &mockRestoreStore{}
	svc := newBackupService(&mockExportStore{}, restore)

	doc := &models.BackupDocument{Version: "9.9.9"}

	_, err := svc.RestoreFromBackup(context.Background(), "user-1", doc, models.RestoreOptions{})
	if !errors.Is(err, models.ErrIncompatibleVersion) {
		t.Fatalf("err = %v, want ErrIncompatibleVersion", err)
	}

	// The gate fires before the restore engine is touched.
	if restore.called {
		t.Error("restore store should not be called for unsupported versions")
	}

	if !strings.Contains(err.Error(), "9.9.9") {
		t.Errorf("error should name the rejected version: %v", err)
	}
}

func TestRestoreFromBackup_PassesCapabilities(t *testing.T) {
	restore := &mockRestoreStore{}
	svc := newBackupService(&mockExportStore{}, restore)

	doc := &models.BackupDocument{Version: models.BackupVersion110}

	if _, err := svc.RestoreFromBackup(context.Background(), "user-1", doc, models.RestoreOptions{ImportPhotos: true}); err != nil {
		t.Fatalf("RestoreFromBackup: %v", err)
	}

	if !restore.gotCaps.HasTravelDocuments || restore.gotCaps.HasTripSeries {
		t.Errorf("caps for 1.1.0 = %+v, want travel documents only", restore.gotCaps)
	}

	if !restore.gotOpts.ImportPhotos {
		t.Error("options not passed through")
	}
}

func TestRestoreFromBackup_WrapsEngineError(t *testing.T) {
	restore := &mockRestoreStore{err: errors.New("constraint violation")}
	svc := newBackupService(&mockExportStore{}, restore)

	doc := &models.BackupDocument{Version: models.BackupVersionCurrent}

	_, err := svc.RestoreFromBackup(context.Background(), "user-1", doc, models.RestoreOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !strings.Contains(err.Error(), "Failed to restore from backup") {
		t.Errorf("err = %v, want restore failure prefix", err)
	}
}

func TestRestoreFromBackup_Success(t *testing.T) {
	restore := &mockRestoreStore{stats: &models.RestoreStats{TripsImported: 2}}
	svc := newBackupService(&mockExportStore{}, restore)

	doc := &models.BackupDocument{Version: models.BackupVersionCurrent}

	result, err := svc.RestoreFromBackup(context.Background(), "user-1", doc, models.RestoreOptions{})
	if err != nil {
		t.Fatalf("RestoreFromBackup: %v", err)
	}

	if !result.Success {
		t.Error("Success = false, want true")
	}

	if result.Message != "Data restored successfully" {
		t.Errorf("Message = %q", result.Message)
	}

	if result.Stats.TripsImported != 2 {
		t.Errorf("TripsImported = %d, want 2", result.Stats.TripsImported)
	}
}

func TestBackupInfo(t *testing.T) {
	svc := newBackupService(&mockExportStore{}, &mockRestoreStore{})

	info := svc.BackupInfo()

	if info.CurrentVersion != models.BackupVersionCurrent {
		t.Errorf("CurrentVersion = %q, want %q", info.CurrentVersion, models.BackupVersionCurrent)
	}

	if len(info.SupportedVersions) != 3 {
		t.Errorf("SupportedVersions = %v, want 3 entries", info.SupportedVersions)
	}

	if info.SupportedVersions[0] != models.BackupVersion100 {
		t.Errorf("SupportedVersions[0] = %q, want oldest first", info.SupportedVersions[0])
	}

	if len(info.SupportedFormats) != 1 || info.SupportedFormats[0] != "json" {
		t.Errorf("SupportedFormats = %v, want [json]", info.SupportedFormats)
	}
}
