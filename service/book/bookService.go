package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jzakotnik/openlibry-sub000/model"
	repo "github.com/jzakotnik/openlibry-sub000/repository/book"
)

type ErrCode string

const (
	ErrBadInput  ErrCode = "BAD_INPUT"
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrRented    ErrCode = "RENTED"
	ErrBadStatus ErrCode = "BAD_STATUS"
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
	Create(ctx context.Context, title, author string, isbn *string) (int64, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, query string) ([]model.Book, error)
	Update(ctx context.Context, id int64, title, author string, isbn *string) error
	SetStatus(ctx context.Context, id int64, status model.RentalStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Auditor interface {
	Record(ctx context.Context, eventType string, content any)
}

type Service interface {
	Create(ctx context.Context, title, author string, isbn *string) (int64, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, query string) ([]model.Book, error)
	Update(ctx context.Context, id int64, title, author string, isbn *string) error

	// SetStatus performs the direct administrative edit (lost, broken,
	// presentation, ordered, remote, or back to available). It never
	// touches a rented book; returns are the only way out of rented.
	SetStatus(ctx context.Context, id int64, status model.RentalStatus) error

	Delete(ctx context.Context, id int64) error
}

type service struct {
	r     Repo
	audit Auditor
}

func New(r Repo, audit Auditor) Service { return &service{r: r, audit: audit} }

var _ Repo = repo.Repo(nil)

type bookEvent struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
}

func (s *service) Create(ctx context.Context, title, author string, isbn *string) (int64, error) {
	if title == "" || author == "" {
		return 0, makeErr(ErrBadInput)
	}
	id, err := s.r.Create(ctx, title, author, isbn)
	if err != nil {
		return 0, err
	}
	s.audit.Record(ctx, model.EventCreateBook, bookEvent{BookID: id, Title: title})
	return id, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, query string) ([]model.Book, error) {
	return s.r.List(ctx, query)
}

func (s *service) Update(ctx context.Context, id int64, title, author string, isbn *string) error {
	if title == "" || author == "" {
		return makeErr(ErrBadInput)
	}
	err := s.r.Update(ctx, id, title, author, isbn)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) SetStatus(ctx context.Context, id int64, status model.RentalStatus) error {
	if !status.Valid() || status == model.StatusRented {
		return makeErr(ErrBadStatus)
	}
	ok, err := s.r.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		// Either the book does not exist or it is currently rented.
		b, err := s.r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if b.RentalStatus == model.StatusRented {
			return makeErr(ErrRented)
		}
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrRented)
	}
	s.audit.Record(ctx, model.EventDeleteBook, bookEvent{BookID: id, Title: b.Title})
	return nil
}
