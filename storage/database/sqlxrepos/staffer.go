package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/quillhq/newsroom/core/staff"
)

type stafferRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	Group     string    `db:"group"`
	RoleType  string    `db:"role_type"`
	Section   string    `db:"section"`
	Image     string    `db:"image"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r stafferRow) toStaffer() staff.Staffer {
	return staff.Staffer{
		ID:        r.ID,
		Name:      r.Name,
		Role:      r.Role,
		Group:     r.Group,
		RoleType:  r.RoleType,
		Section:   r.Section,
		Image:     r.Image,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type StafferRepository struct {
	db *sqlx.DB
}

var _ staff.Repository = (*StafferRepository)(nil)

func NewStafferRepository(db *sqlx.DB) *StafferRepository {
	return &StafferRepository{db: db}
}

func (repo *StafferRepository) CreateStaffer(stf staff.Staffer) (staff.Staffer, error) {
	const query = `
		INSERT INTO staffers (id, name, role, "group", role_type, section, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.Exec(
		query,
		stf.ID, stf.Name, stf.Role, stf.Group, stf.RoleType, stf.Section, stf.Image, stf.CreatedAt, stf.UpdatedAt,
	)
	if err != nil {
		return staff.Staffer{}, errors.Wrap(err, "inserting staffer")
	}
	return stf, nil
}

func (repo *StafferRepository) QueryAllStaffers() ([]staff.Staffer, error) {
	var rows []stafferRow
	if err := repo.db.Select(&rows, `SELECT * FROM staffers ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying staffers")
	}
	staffers := make([]staff.Staffer, 0, len(rows))
	for _, r := range rows {
		staffers = append(staffers, r.toStaffer())
	}
	return staffers, nil
}

func (repo *StafferRepository) GetStafferByID(id string) (staff.Staffer, error) {
	var row stafferRow
	if err := repo.db.Get(&row, `SELECT * FROM staffers WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return staff.Staffer{}, staff.ErrNotFound
		}
		return staff.Staffer{}, errors.Wrap(err, "getting staffer")
	}
	return row.toStaffer(), nil
}

func (repo *StafferRepository) UpdateStaffer(stf staff.Staffer) (staff.Staffer, error) {
	const query = `
		UPDATE staffers
		SET name = $2, role = $3, "group" = $4, role_type = $5, section = $6, image = $7, updated_at = $8
		WHERE id = $1`
	res, err := repo.db.Exec(
		query,
		stf.ID, stf.Name, stf.Role, stf.Group, stf.RoleType, stf.Section, stf.Image, stf.UpdatedAt,
	)
	if err != nil {
		return staff.Staffer{}, errors.Wrap(err, "updating staffer")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return staff.Staffer{}, staff.ErrNotFound
	}
	return stf, nil
}

func (repo *StafferRepository) DeleteStaffersByID(ids ...string) error {
	if _, err := repo.db.Exec(`DELETE FROM staffers WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting staffers")
	}
	return nil
}
