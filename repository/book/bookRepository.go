package bookrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jzakotnik/openlibry-sub000/model"
)

type Repo interface {
	Create(ctx context.Context, title, author string, isbn *string) (int64, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, query string) ([]model.Book, error)
	Update(ctx context.Context, id int64, title, author string, isbn *string) error

	// SetStatus moves a book into or out of an administrative state. The
	// guard keeps it from touching a rented book; rented books leave the
	// machine only through a return.
	SetStatus(ctx context.Context, id int64, status model.RentalStatus) (bool, error)

	// Delete refuses to remove a rented book for the same reason.
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

const bookColumns = `id, title, author, isbn, rental_status, user_id, due_date, renewal_count, created_at, updated_at`

func (r *repo) Create(ctx context.Context, title, author string, isbn *string) (int64, error) {
	const q = `
INSERT INTO books (title, author, isbn, rental_status, renewal_count, created_at, updated_at)
VALUES ($1, $2, $3, 'available', 0, $4, $4)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, title, author, isbn, time.Now().UTC()).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "create book")
	}
	return id, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context, query string) ([]model.Book, error) {
	if query == "" {
		const q = `SELECT ` + bookColumns + ` FROM books ORDER BY id DESC`
		var out []model.Book
		if err := r.db.SelectContext(ctx, &out, q); err != nil {
			return nil, errors.Wrap(err, "list books")
		}
		return out, nil
	}
	const q = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE title ILIKE '%' || $1 || '%'
	OR author ILIKE '%' || $1 || '%'
	ORDER BY id DESC`
	var out []model.Book
	if err := r.db.SelectContext(ctx, &out, q, query); err != nil {
		return nil, errors.Wrap(err, "search books")
	}
	return out, nil
}

func (r *repo) Update(ctx context.Context, id int64, title, author string, isbn *string) error {
	const q = `
	UPDATE books
	SET title = $2, author = $3, isbn = $4, updated_at = NOW()
	WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, title, author, isbn)
	if err != nil {
		return errors.Wrap(err, "update book")
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) SetStatus(ctx context.Context, id int64, status model.RentalStatus) (bool, error) {
	const q = `
	UPDATE books
	SET rental_status = $2,
		user_id       = NULL,
		due_date      = NULL,
		renewal_count = 0,
		updated_at    = NOW()
	WHERE id = $1
	AND rental_status <> 'rented'`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return false, errors.Wrap(err, "set book status")
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM books WHERE id = $1 AND rental_status <> 'rented'`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, errors.Wrap(err, "delete book")
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
