package sqlxrepos

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/quillhq/newsroom/core"
	"github.com/quillhq/newsroom/core/user"
)

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash []byte         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    time.Time      `db:"last_login"`
}

func (r userRow) toUser() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		IsActive:     r.IsActive,
		Roles:        r.Roles,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
		LastLogin:    r.LastLogin.UTC(),
	}
}

func toUsers(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toUser())
	}
	return users
}

type UserRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (repo *UserRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	exclIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		exclIDs = append(exclIDs, usr.ID)
	}

	check := func(field, value string, dupErr error) error {
		if value == "" {
			return nil
		}
		query := fmt.Sprintf(`SELECT COUNT(*) FROM users WHERE %s = $1 AND NOT (id = ANY($2))`, field)
		var count int
		if err := repo.db.Get(&count, query, value, pq.Array(exclIDs)); err != nil {
			return errors.Wrap(err, "checking "+field+" uniqueness")
		}
		if count > 0 {
			return dupErr
		}
		return nil
	}

	if err := check("username", username, user.ErrUsernameExists); err != nil {
		return err
	}
	return check("email", email, user.ErrEmailExists)
}

func (repo *UserRepository) CreateUser(usr user.User) (user.User, error) {
	const query = `
		INSERT INTO users (id, name, username, email, is_active, roles, password_hash, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := repo.db.Exec(
		query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.IsActive,
		pq.Array(usr.Roles), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *UserRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, `SELECT * FROM users`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return toUsers(rows), nil
}

func (repo *UserRepository) getUser(where string, args ...interface{}) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, `SELECT * FROM users WHERE `+where, args...); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *UserRepository) GetUserByID(id string) (user.User, error) {
	return repo.getUser(`id = $1`, id)
}

func (repo *UserRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getUser(`username = $1`, username)
}

func (repo *UserRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getUser(`email = $1`, email)
}

func (repo *UserRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getUser(`(username = $1 OR email = $1)`, username)
}

func (repo *UserRepository) FilterUsers(filter user.QueryFilter, orderings ...core.DBOrdering) ([]user.User, error) {
	where := []string{"TRUE"}
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + strings.ToLower(filter.Search) + "%")
		where = append(where, fmt.Sprintf("(LOWER(name) LIKE %[1]s OR LOWER(username) LIKE %[1]s OR LOWER(email) LIKE %[1]s)", p))
	}
	if len(filter.Roles) > 0 {
		prefixes := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			prefixes = append(prefixes, fmt.Sprintf("r LIKE %s", arg(role+"%")))
		}
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(roles) AS r WHERE %s)", strings.Join(prefixes, " OR ")))
	}
	if filter.IsActive != nil {
		where = append(where, "is_active = "+arg(*filter.IsActive))
	}
	if !filter.CreatedFrom.IsZero() {
		where = append(where, "created_at >= "+arg(filter.CreatedFrom.UTC()))
	}
	if !filter.CreatedTo.IsZero() {
		where = append(where, "created_at <= "+arg(filter.CreatedTo.UTC()))
	}

	query := `SELECT * FROM users WHERE ` + strings.Join(where, " AND ")
	if len(orderings) > 0 {
		terms := make([]string, 0, len(orderings))
		for _, ord := range orderings {
			terms = append(terms, ord.String())
		}
		query += " ORDER BY " + strings.Join(terms, ", ")
	}

	var rows []userRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return toUsers(rows), nil
}

func (repo *UserRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	// only save set fields
	orig, err := repo.GetUserByID(usr.ID)
	if err != nil {
		return user.User{}, err
	}
	if usr.Roles != nil {
		orig.Roles = usr.Roles
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	if isActive != nil {
		orig.IsActive = *isActive
	}
	orig.Name = usr.Name
	orig.Username = usr.Username
	orig.Email = usr.Email
	orig.UpdatedAt = usr.UpdatedAt

	const query = `
		UPDATE users
		SET name = $2, username = $3, email = $4, is_active = $5, roles = $6, password_hash = $7, updated_at = $8
		WHERE id = $1`
	if _, err = repo.db.Exec(
		query,
		orig.ID, orig.Name, orig.Username, orig.Email, orig.IsActive,
		pq.Array(orig.Roles), orig.PasswordHash, orig.UpdatedAt,
	); err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return orig, nil
}

func (repo *UserRepository) SetUserLastLogin(id string, lastLogin time.Time) error {
	if _, err := repo.db.Exec(`UPDATE users SET last_login = $2 WHERE id = $1`, id, lastLogin); err != nil {
		return errors.Wrap(err, "setting last login")
	}
	return nil
}

func (repo *UserRepository) DeleteUsersByID(ids ...string) error {
	if _, err := repo.db.Exec(`DELETE FROM users WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
