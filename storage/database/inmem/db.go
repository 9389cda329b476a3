package inmemdb

import (
	"sync"

	"github.com/quillhq/newsroom/core/schedule"
	"github.com/quillhq/newsroom/core/staff"
	"github.com/quillhq/newsroom/core/user"
)

type (
	DB struct {
		user     *userTable
		staff    *stafferTable
		snapshot *snapshotTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
		order []string // insertion order
	}

	stafferTable struct {
		sync.RWMutex
		table map[string]*staff.Staffer
		order []string
	}

	snapshotTable struct {
		sync.RWMutex
		table map[string][]schedule.Item
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		staff:    &stafferTable{table: make(map[string]*staff.Staffer)},
		snapshot: &snapshotTable{table: make(map[string][]schedule.Item)},
	}
	return db, nil
}
