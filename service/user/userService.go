package usersvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jzakotnik/openlibry-sub000/model"
)

type ErrCode string

const (
	ErrBadInput ErrCode = "BAD_INPUT"
	ErrNotFound ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, firstName, lastName string, grade *string) (int64, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int64, firstName, lastName string, grade *string) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// Rentals resolves the user's currently rented books; membership is derived
// from the books table, users hold no list of their own.
type Rentals interface {
	RentedBooks(ctx context.Context, userID int64) ([]model.Book, error)
}

type Auditor interface {
	Record(ctx context.Context, eventType string, content any)
}

// Detail is a user plus the derived rentals, for the staff detail page.
type Detail struct {
	User        model.User   `json:"user"`
	RentedBooks []model.Book `json:"rented_books"`
}

type Service interface {
	Create(ctx context.Context, firstName, lastName string, grade *string) (int64, error)
	Get(ctx context.Context, id int64) (*Detail, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int64, firstName, lastName string, grade *string) error

	// Deactivate soft-disables a user. Existing rentals stay untouched;
	// the UI stops offering the user for new ones.
	Deactivate(ctx context.Context, id int64) error
}

type service struct {
	r       Repo
	rentals Rentals
	audit   Auditor
}

func New(r Repo, rentals Rentals, audit Auditor) Service {
	return &service{r: r, rentals: rentals, audit: audit}
}

type userEvent struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *service) Create(ctx context.Context, firstName, lastName string, grade *string) (int64, error) {
	if firstName == "" || lastName == "" {
		return 0, makeErr(ErrBadInput)
	}
	id, err := s.r.Create(ctx, firstName, lastName, grade)
	if err != nil {
		return 0, err
	}
	s.audit.Record(ctx, model.EventCreateUser, userEvent{UserID: id, FirstName: firstName, LastName: lastName})
	return id, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Detail, error) {
	u, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	books, err := s.rentals.RentedBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{User: *u, RentedBooks: books}, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.r.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, firstName, lastName string, grade *string) error {
	if firstName == "" || lastName == "" {
		return makeErr(ErrBadInput)
	}
	err := s.r.Update(ctx, id, firstName, lastName, grade)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	u, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if err := s.r.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	s.audit.Record(ctx, model.EventDisableUser, userEvent{UserID: id, FirstName: u.FirstName, LastName: u.LastName})
	return nil
}
