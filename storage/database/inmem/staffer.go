package inmemdb

import (
	"github.com/quillhq/newsroom/core/staff"
)

type stafferRepository struct {
	db *stafferTable
}

var _ staff.Repository = (*stafferRepository)(nil)

func NewStafferRepository(db *DB) staff.Repository {
	return &stafferRepository{db: db.staff}
}

func (repo *stafferRepository) query() []staff.Staffer {
	staffers := make([]staff.Staffer, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if stf, ok := repo.db.table[id]; ok {
			staffers = append(staffers, *stf)
		}
	}
	return staffers
}

func (repo *stafferRepository) CreateStaffer(stf staff.Staffer) (staff.Staffer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[stf.ID] = &stf
	repo.db.order = append(repo.db.order, stf.ID)
	return stf, nil
}

func (repo *stafferRepository) QueryAllStaffers() ([]staff.Staffer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *stafferRepository) GetStafferByID(id string) (staff.Staffer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if stf, ok := repo.db.table[id]; ok {
		return *stf, nil
	}
	return staff.Staffer{}, staff.ErrNotFound
}

func (repo *stafferRepository) UpdateStaffer(stf staff.Staffer) (staff.Staffer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[stf.ID]; !ok {
		return staff.Staffer{}, staff.ErrNotFound
	}
	repo.db.table[stf.ID] = &stf
	return stf, nil
}

func (repo *stafferRepository) DeleteStaffersByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
