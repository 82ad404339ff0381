// repository/user/repo.go
package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jzakotnik/openlibry-sub000/model"
)

type Repo interface {
	Create(ctx context.Context, firstName, lastName string, grade *string) (int64, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int64, firstName, lastName string, grade *string) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

const userColumns = `id, first_name, last_name, grade, active, created_at`

func (r *repo) Create(ctx context.Context, firstName, lastName string, grade *string) (int64, error) {
	const q = `
		INSERT INTO users (first_name, last_name, grade, active, created_at)
		VALUES ($1, $2, $3, TRUE, $4)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, firstName, lastName, grade, time.Now().UTC()).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "create user")
	}
	return id, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var u model.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY last_name, first_name, id`
	var out []model.User
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return out, nil
}

func (r *repo) Update(ctx context.Context, id int64, firstName, lastName string, grade *string) error {
	const q = `
		UPDATE users
		SET first_name = $2, last_name = $3, grade = $4
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, firstName, lastName, grade)
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) SetActive(ctx context.Context, id int64, active bool) error {
	const q = `UPDATE users SET active = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return errors.Wrap(err, "set user active")
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
