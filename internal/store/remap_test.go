package store

import (
	"testing"

	"github.com/waylog/waylog/internal/models"
)

func TestRemapTableRecordLookup(t *testing.T) {
	r := newRemapTable()

	r.record(models.KindPhoto, 7, 101)
	r.record(models.KindActivity, 7, 202)

	newID, ok := r.lookup(models.KindPhoto, 7)
	if !ok || newID != 101 {
		t.Fatalf("lookup photo 7: got (%d, %v), want (101, true)", newID, ok)
	}

	// Same backup-local ID under a different kind resolves independently.
	newID, ok = r.lookup(models.KindActivity, 7)
	if !ok || newID != 202 {
		t.Fatalf("lookup activity 7: got (%d, %v), want (202, true)", newID, ok)
	}

	if _, ok := r.lookup(models.KindLodging, 7); ok {
		t.Fatal("expected miss for unrecorded kind")
	}

	if _, ok := r.lookup(models.KindPhoto, 8); ok {
		t.Fatal("expected miss for unrecorded ID")
	}
}

func TestRemapTableResolveLink(t *testing.T) {
	r := newRemapTable()
	r.record(models.KindPhoto, 1, 100)
	r.record(models.KindLocation, 2, 200)

	tests := []struct {
		name       string
		link       models.BackupEntityLink
		wantSource int64
		wantTarget int64
		wantOK     bool
	}{
		{
			name: "both endpoints resolve",
			link: models.BackupEntityLink{
				SourceType: models.KindPhoto, SourceID: 1,
				TargetType: models.KindLocation, TargetID: 2,
			},
			wantSource: 100,
			wantTarget: 200,
			wantOK:     true,
		},
		{
			name: "dangling source",
			link: models.BackupEntityLink{
				SourceType: models.KindPhoto, SourceID: 99,
				TargetType: models.KindLocation, TargetID: 2,
			},
		},
		{
			name: "dangling target",
			link: models.BackupEntityLink{
				SourceType: models.KindPhoto, SourceID: 1,
				TargetType: models.KindLocation, TargetID: 99,
			},
		},
		{
			name: "unknown kind",
			link: models.BackupEntityLink{
				SourceType: "MIXTAPE", SourceID: 1,
				TargetType: models.KindLocation, TargetID: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, target, ok := r.resolveLink(tt.link)
			if ok != tt.wantOK {
				t.Fatalf("resolveLink ok = %v, want %v", ok, tt.wantOK)
			}

			if ok && (source != tt.wantSource || target != tt.wantTarget) {
				t.Fatalf("resolveLink = (%d, %d), want (%d, %d)", source, target, tt.wantSource, tt.wantTarget)
			}
		})
	}
}

func TestRemapTableSeriesAndNames(t *testing.T) {
	r := newRemapTable()
	r.seriesByID[5] = 500
	r.tagsByName["summer"] = 1
	r.companionsByName["Alex"] = 2

	if got := r.seriesByID[5]; got != 500 {
		t.Fatalf("seriesByID[5] = %d, want 500", got)
	}

	// Name matching is exact and case-sensitive.
	if _, ok := r.tagsByName["Summer"]; ok {
		t.Fatal("tag name lookup should be case-sensitive")
	}

	if _, ok := r.companionsByName["Alex"]; !ok {
		t.Fatal("expected companion name hit")
	}
}
