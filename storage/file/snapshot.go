// Package filestore persists calendar snapshots as plain JSON files on
// disk, one file per slot. It is meant for local development where no
// database is running; the file content matches the database snapshot
// layout byte for byte.
package filestore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/quillhq/newsroom/core/schedule"
)

type SnapshotStore struct {
	path string
}

var _ schedule.SnapshotStore = (*SnapshotStore)(nil)

func NewSnapshotStore(dir, slot string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating snapshot dir")
	}
	return &SnapshotStore{path: filepath.Join(dir, slot+".json")}, nil
}

func (s *SnapshotStore) Load() ([]schedule.Item, error) {
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []schedule.Item{}, nil // no items yet
		}
		return nil, errors.Wrap(err, "reading snapshot file")
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

	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing snapshot file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replacing snapshot file")
	}
	return nil
}
