package store

import "github.com/waylog/waylog/internal/models"

// remapTable translates backup-local identifiers into the fresh database IDs
// created during a restore. One table covers a whole restore call; entity IDs
// are namespaced by kind because backup-local IDs are only unique per table.
type remapTable struct {
	ids              map[models.EntityKind]map[int64]int64
	tagsByName       map[string]int64
	companionsByName map[string]int64
	seriesByID       map[int64]int64
}

func newRemapTable() *remapTable {
	return &remapTable{
		ids:              map[models.EntityKind]map[int64]int64{},
		tagsByName:       map[string]int64{},
		companionsByName: map[string]int64{},
		seriesByID:       map[int64]int64{},
	}
}

// record stores the new database ID assigned to a backup-local entity ID.
func (r *remapTable) record(kind models.EntityKind, oldID, newID int64) {
	m, ok := r.ids[kind]
	if !ok {
		m = map[int64]int64{}
		r.ids[kind] = m
	}

	m[oldID] = newID
}

// lookup resolves a backup-local entity ID to its new database ID.
func (r *remapTable) lookup(kind models.EntityKind, oldID int64) (int64, bool) {
	newID, ok := r.ids[kind][oldID]
	return newID, ok
}

// resolveLink maps both endpoints of an entity link. It reports false when
// either endpoint is unknown, which happens for dangling references in the
// document or for photos skipped by the import options.
func (r *remapTable) resolveLink(link models.BackupEntityLink) (sourceID, targetID int64, ok bool) {
	if !link.SourceType.Known() || !link.TargetType.Known() {
		return 0, 0, false
	}

	sourceID, ok = r.lookup(link.SourceType, link.SourceID)
	if !ok {
		return 0, 0, false
	}

	targetID, ok = r.lookup(link.TargetType, link.TargetID)
	if !ok {
		return 0, 0, false
	}

	return sourceID, targetID, true
}
