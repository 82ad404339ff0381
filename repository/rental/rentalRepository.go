// repository/rental/rentalRepository.go
package rental

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jzakotnik/openlibry-sub000/model"
)

// ErrNoRowsAffected is returned by the guarded mutations when the WHERE
// clause matched nothing, i.e. the row changed between read and write.
var ErrNoRowsAffected = errors.New("no rows affected")

// Tx is the transaction-scoped slice of the store. Everything here runs
// inside one database transaction; the row lock taken by GetForUpdate
// serializes concurrent operations on the same book.
type Tx interface {
	GetForUpdate(ctx context.Context, bookID int64) (*model.Book, error)
	UserExists(ctx context.Context, userID int64) (bool, error)

	// Guarded mutations. Each re-checks its precondition in the WHERE
	// clause and returns ErrNoRowsAffected when it no longer holds.
	ApplyRent(ctx context.Context, bookID, userID int64, dueDate time.Time) error
	ApplyReturn(ctx context.Context, bookID int64) error
	ApplyExtend(ctx context.Context, bookID int64, newDueDate time.Time, expectedRenewals int) error
}

type Repo interface {
	// WithinTx runs fn inside a single transaction: commit on nil,
	// rollback on error. Mutations inside fn are all-or-nothing.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	Get(ctx context.Context, bookID int64) (*model.Book, error)
	ListRentedBooks(ctx context.Context, userID int64) ([]model.Book, error)
	ListOverdue(ctx context.Context, now time.Time) ([]model.Book, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

const bookColumns = `id, title, author, isbn, rental_status, user_id, due_date, renewal_count, created_at, updated_at`

func (r *repo) WithinTx(ctx context.Context, fn func(tx Tx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(&txRepo{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repo) Get(ctx context.Context, bookID int64) (*model.Book, error) {
	const q = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE id = $1`
	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, bookID); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) ListRentedBooks(ctx context.Context, userID int64) ([]model.Book, error) {
	const q = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE rental_status = 'rented'
		AND user_id = $1
		ORDER BY due_date, id`
	var out []model.Book
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, errors.Wrap(err, "list rented books")
	}
	return out, nil
}

func (r *repo) ListOverdue(ctx context.Context, now time.Time) ([]model.Book, error) {
	const q = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE rental_status = 'rented'
		AND due_date < $1
		ORDER BY due_date, id`
	var out []model.Book
	if err := r.db.SelectContext(ctx, &out, q, now); err != nil {
		return nil, errors.Wrap(err, "list overdue")
	}
	return out, nil
}

// txRepo implements Tx on a live sqlx transaction.
type txRepo struct{ tx *sqlx.Tx }

func (t *txRepo) GetForUpdate(ctx context.Context, bookID int64) (*model.Book, error) {
	const q = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE id = $1
		FOR UPDATE`
	var b model.Book
	if err := t.tx.GetContext(ctx, &b, q, bookID); err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *txRepo) UserExists(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var ok bool
	if err := t.tx.GetContext(ctx, &ok, q, userID); err != nil {
		return false, errors.Wrap(err, "check user exists")
	}
	return ok, nil
}

func (t *txRepo) ApplyRent(ctx context.Context, bookID, userID int64, dueDate time.Time) error {
	const q = `
		UPDATE books
		SET rental_status = 'rented',
			user_id       = $2,
			due_date      = $3,
			renewal_count = 0,
			updated_at    = NOW()
		WHERE id = $1
		AND rental_status = 'available'`
	res, err := t.tx.ExecContext(ctx, q, bookID, userID, dueDate)
	if err != nil {
		return errors.Wrap(err, "apply rent")
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (t *txRepo) ApplyReturn(ctx context.Context, bookID int64) error {
	const q = `
		UPDATE books
		SET rental_status = 'available',
			user_id       = NULL,
			due_date      = NULL,
			renewal_count = 0,
			updated_at    = NOW()
		WHERE id = $1
		AND rental_status = 'rented'`
	res, err := t.tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return errors.Wrap(err, "apply return")
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (t *txRepo) ApplyExtend(ctx context.Context, bookID int64, newDueDate time.Time, expectedRenewals int) error {
	const q = `
		UPDATE books
		SET due_date      = $2,
			renewal_count = renewal_count + 1,
			updated_at    = NOW()
		WHERE id = $1
		AND rental_status = 'rented'
		AND renewal_count = $3`
	res, err := t.tx.ExecContext(ctx, q, bookID, newDueDate, expectedRenewals)
	if err != nil {
		return errors.Wrap(err, "apply extend")
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
