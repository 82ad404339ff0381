package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jzakotnik/openlibry-sub000/config"
	"github.com/jzakotnik/openlibry-sub000/model"
	rrepo "github.com/jzakotnik/openlibry-sub000/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrUserNotFound  ErrCode = "USER_NOT_FOUND"
	ErrAlreadyRented ErrCode = "ALREADY_RENTED"
	ErrNotRented     ErrCode = "NOT_RENTED"
	ErrMaxExtensions ErrCode = "MAX_EXTENSIONS_REACHED"
	ErrConflict      ErrCode = "STORAGE_CONFLICT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Tx is the store's transaction-scoped interface.
type Tx = rrepo.Tx

type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	Get(ctx context.Context, bookID int64) (*model.Book, error)
	ListRentedBooks(ctx context.Context, userID int64) ([]model.Book, error)
	ListOverdue(ctx context.Context, now time.Time) ([]model.Book, error)
}

// Auditor is the append-only sink for state-changing events. Record never
// returns an error: audit is best-effort and must not roll back a rental.
type Auditor interface {
	Record(ctx context.Context, eventType string, content any)
}

// View is the read-only snapshot the presentation layer uses to enable or
// disable its controls.
type View struct {
	Book      model.Book `json:"book"`
	CanExtend bool       `json:"can_extend"`
	IsOverdue bool       `json:"is_overdue"`
}

type Service interface {
	// Rent moves an available book to rented and returns the due date.
	Rent(ctx context.Context, bookID, userID int64) (time.Time, error)

	// Return moves a rented book back to available. Returning a book
	// that is not rented is a no-op success.
	Return(ctx context.Context, bookID int64) error

	// Extend advances a rented book's due date, bounded by the renewal
	// cap. Returns the new due date and renewal count.
	Extend(ctx context.Context, bookID int64) (time.Time, int, error)

	Status(ctx context.Context, bookID int64) (*View, error)
	RentedBooks(ctx context.Context, userID int64) ([]model.Book, error)
}

// ----- Service implementation -----

type service struct {
	store Store
	audit Auditor
	cfg   config.Rental
	clock Clock
}

func New(store Store, audit Auditor, cfg config.Rental, clock Clock) Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &service{store: store, audit: audit, cfg: cfg, clock: clock}
}

// audit payloads

type rentEvent struct {
	BookID  int64     `json:"book_id"`
	Title   string    `json:"title"`
	UserID  int64     `json:"user_id"`
	DueDate time.Time `json:"due_date"`
}

type returnEvent struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
	UserID int64  `json:"user_id"`
}

type extendEvent struct {
	BookID       int64     `json:"book_id"`
	Title        string    `json:"title"`
	UserID       int64     `json:"user_id"`
	DueDate      time.Time `json:"due_date"`
	RenewalCount int       `json:"renewal_count"`
}

func (s *service) Rent(ctx context.Context, bookID, userID int64) (time.Time, error) {
	var (
		due   time.Time
		title string
	)
	op := func() error {
		// One clock read per operation; the whole transaction uses it.
		now := s.clock.Now().UTC()
		d := AddDays(now, s.cfg.RentalDurationDays)
		return s.store.WithinTx(ctx, func(tx Tx) error {
			b, err := tx.GetForUpdate(ctx, bookID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return makeErr(ErrNotFound)
				}
				return err
			}
			if b.RentalStatus != model.StatusAvailable {
				return makeErr(ErrAlreadyRented)
			}
			ok, err := tx.UserExists(ctx, userID)
			if err != nil {
				return err
			}
			if !ok {
				return makeErr(ErrUserNotFound)
			}
			if err := tx.ApplyRent(ctx, bookID, userID, d); err != nil {
				return translateStorageErr(err)
			}
			due = d
			title = b.Title
			return nil
		})
	}
	if err := s.withRetry(op); err != nil {
		return time.Time{}, err
	}
	s.audit.Record(ctx, model.EventRentBook, rentEvent{
		BookID: bookID, Title: title, UserID: userID, DueDate: due,
	})
	return due, nil
}

func (s *service) Return(ctx context.Context, bookID int64) error {
	var (
		mutated bool
		title   string
		userID  int64
	)
	op := func() error {
		return s.store.WithinTx(ctx, func(tx Tx) error {
			b, err := tx.GetForUpdate(ctx, bookID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return makeErr(ErrNotFound)
				}
				return err
			}
			if b.RentalStatus != model.StatusRented {
				// Idempotent: a double-click on "return" must not
				// fail and must not produce a second audit record.
				mutated = false
				return nil
			}
			if err := tx.ApplyReturn(ctx, bookID); err != nil {
				return translateStorageErr(err)
			}
			mutated = true
			title = b.Title
			if b.UserID != nil {
				userID = *b.UserID
			}
			return nil
		})
	}
	if err := s.withRetry(op); err != nil {
		return err
	}
	if mutated {
		s.audit.Record(ctx, model.EventReturnBook, returnEvent{
			BookID: bookID, Title: title, UserID: userID,
		})
	}
	return nil
}

func (s *service) Extend(ctx context.Context, bookID int64) (time.Time, int, error) {
	var (
		due    time.Time
		count  int
		title  string
		userID int64
	)
	op := func() error {
		now := s.clock.Now().UTC()
		// Always relative to now, never to the old due date: an overdue
		// book extended today is due in ExtensionDurationDays from today.
		d := AddDays(now, s.cfg.ExtensionDurationDays)
		return s.store.WithinTx(ctx, func(tx Tx) error {
			b, err := tx.GetForUpdate(ctx, bookID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return makeErr(ErrNotFound)
				}
				return err
			}
			if b.RentalStatus != model.StatusRented {
				return makeErr(ErrNotRented)
			}
			if b.RenewalCount >= s.cfg.MaxExtensions {
				return makeErr(ErrMaxExtensions)
			}
			if err := tx.ApplyExtend(ctx, bookID, d, b.RenewalCount); err != nil {
				return translateStorageErr(err)
			}
			due = d
			count = b.RenewalCount + 1
			title = b.Title
			if b.UserID != nil {
				userID = *b.UserID
			}
			return nil
		})
	}
	if err := s.withRetry(op); err != nil {
		return time.Time{}, 0, err
	}
	s.audit.Record(ctx, model.EventExtendBook, extendEvent{
		BookID: bookID, Title: title, UserID: userID, DueDate: due, RenewalCount: count,
	})
	return due, count, nil
}

func (s *service) Status(ctx context.Context, bookID int64) (*View, error) {
	b, err := s.store.Get(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	now := s.clock.Now().UTC()
	return &View{
		Book:      *b,
		CanExtend: CanExtend(b, s.cfg.MaxExtensions),
		IsOverdue: IsOverdue(b, now),
	}, nil
}

func (s *service) RentedBooks(ctx context.Context, userID int64) ([]model.Book, error) {
	return s.store.ListRentedBooks(ctx, userID)
}

// withRetry reruns an operation once after a storage conflict. One retry
// only: anything still conflicting goes back to the caller.
func (s *service) withRetry(op func() error) error {
	// translate again here so serialization failures raised at commit
	// time are retried the same way as in-flight ones
	err := translateStorageErr(op())
	if err != nil && Code(err) == ErrConflict {
		err = translateStorageErr(op())
	}
	return err
}

func translateStorageErr(err error) error {
	if errors.Is(err, rrepo.ErrNoRowsAffected) {
		return makeErr(ErrConflict)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return makeErr(ErrConflict)
		}
	}
	return err
}
