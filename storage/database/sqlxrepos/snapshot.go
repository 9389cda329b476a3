package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/quillhq/newsroom/core/schedule"
)

// SnapshotStore keeps the whole calendar item list as one JSONB row per
// slot, overwritten on every save. An absent slot or undecodable payload
// loads as an empty list; the schema-less snapshot layout is owned by
// schedule.Item.
type SnapshotStore struct {
	db   *sqlx.DB
	slot string
}

var _ schedule.SnapshotStore = (*SnapshotStore)(nil)

func NewSnapshotStore(db *sqlx.DB, slot string) *SnapshotStore {
	return &SnapshotStore{db: db, slot: slot}
}

func (s *SnapshotStore) Load() ([]schedule.Item, error) {
	var data []byte
	err := s.db.Get(&data, `SELECT data FROM snapshots WHERE slot = $1`, s.slot)
	if err != nil {
		if err == sql.ErrNoRows {
			return []schedule.Item{}, nil // no items yet
		}
		return nil, errors.Wrap(err, "loading snapshot")
	}

	var items []schedule.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return []schedule.Item{}, nil // malformed content decodes to empty
	}
	if items == nil {
		items = []schedule.Item{}
	}
	return items, nil
}

func (s *SnapshotStore) Save(items []schedule.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}

	const query = `
		INSERT INTO snapshots (slot, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err = s.db.Exec(query, s.slot, data, time.Now().UTC()); err != nil {
		return errors.Wrap(err, "saving snapshot")
	}
	return nil
}
