package inmemdb

import (
	"github.com/quillhq/newsroom/core/schedule"
)

type snapshotStore struct {
	db   *snapshotTable
	slot string
}

var _ schedule.SnapshotStore = (*snapshotStore)(nil)

func NewSnapshotStore(db *DB, slot string) schedule.SnapshotStore {
	return &snapshotStore{db: db.snapshot, slot: slot}
}

func (s *snapshotStore) Load() ([]schedule.Item, error) {
	s.db.RLock()
	defer s.db.RUnlock()

	items, ok := s.db.table[s.slot]
	if !ok {
		return []schedule.Item{}, nil // absent slot loads as empty
	}
	cpy := make([]schedule.Item, len(items))
	copy(cpy, items)
	return cpy, nil
}

func (s *snapshotStore) Save(items []schedule.Item) error {
	s.db.Lock()
	defer s.db.Unlock()

	cpy := make([]schedule.Item, len(items))
	copy(cpy, items)
	s.db.table[s.slot] = cpy
	return nil
}
