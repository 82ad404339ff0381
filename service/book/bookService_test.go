// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jzakotnik/openlibry-sub000/model"
	booksvc "github.com/jzakotnik/openlibry-sub000/service/book"
)

type repoMock struct {
	createFn    func(ctx context.Context, title, author string, isbn *string) (int64, error)
	getFn       func(ctx context.Context, id int64) (*model.Book, error)
	listFn      func(ctx context.Context, query string) ([]model.Book, error)
	updateFn    func(ctx context.Context, id int64, title, author string, isbn *string) error
	setStatusFn func(ctx context.Context, id int64, status model.RentalStatus) (bool, error)
	deleteFn    func(ctx context.Context, id int64) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, title, author string, isbn *string) (int64, error) {
	return m.createFn(ctx, title, author, isbn)
}
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Book, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context, query string) ([]model.Book, error) {
	return m.listFn(ctx, query)
}
func (m *repoMock) Update(ctx context.Context, id int64, title, author string, isbn *string) error {
	return m.updateFn(ctx, id, title, author, isbn)
}
func (m *repoMock) SetStatus(ctx context.Context, id int64, status model.RentalStatus) (bool, error) {
	return m.setStatusFn(ctx, id, status)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}

type auditStub struct{ events []string }

func (a *auditStub) Record(ctx context.Context, eventType string, content any) {
	a.events = append(a.events, eventType)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{}, &auditStub{})
	if _, err := s.Create(context.Background(), "", "Ende", nil); booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("expected BAD_INPUT for empty title, got %v", err)
	}
	if _, err := s.Create(context.Background(), "Momo", "", nil); booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("expected BAD_INPUT for empty author, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, title, author string, isbn *string) (int64, error) {
			if title != "Momo" || author != "Michael Ende" {
				return 0, errors.New("bad args")
			}
			return 42, nil
		},
	}
	a := &auditStub{}
	s := booksvc.New(m, a)
	id, err := s.Create(context.Background(), "Momo", "Michael Ende", nil)
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
	if len(a.events) != 1 || a.events[0] != model.EventCreateBook {
		t.Fatalf("audit events = %v; want [create book]", a.events)
	}
}

func TestSetStatus_Rules(t *testing.T) {
	s := booksvc.New(&repoMock{}, &auditStub{})

	// rented is never a direct-edit target
	if err := s.SetStatus(context.Background(), 1, model.StatusRented); booksvc.Code(err) != booksvc.ErrBadStatus {
		t.Fatalf("expected BAD_STATUS, got %v", err)
	}
	if err := s.SetStatus(context.Background(), 1, model.RentalStatus("vanished")); booksvc.Code(err) != booksvc.ErrBadStatus {
		t.Fatalf("expected BAD_STATUS for unknown status, got %v", err)
	}
}

func TestSetStatus_RefusesRentedBook(t *testing.T) {
	uid := int64(7)
	m := &repoMock{
		setStatusFn: func(ctx context.Context, id int64, status model.RentalStatus) (bool, error) {
			return false, nil
		},
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, RentalStatus: model.StatusRented, UserID: &uid}, nil
		},
	}
	s := booksvc.New(m, &auditStub{})
	if err := s.SetStatus(context.Background(), 1, model.StatusLost); booksvc.Code(err) != booksvc.ErrRented {
		t.Fatalf("expected RENTED, got %v", err)
	}
}

func TestDelete_RefusesRentedBook(t *testing.T) {
	uid := int64(7)
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, Title: "Momo", RentalStatus: model.StatusRented, UserID: &uid}, nil
		},
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	a := &auditStub{}
	s := booksvc.New(m, a)
	if err := s.Delete(context.Background(), 1); booksvc.Code(err) != booksvc.ErrRented {
		t.Fatalf("expected RENTED, got %v", err)
	}
	if len(a.events) != 0 {
		t.Fatalf("failed delete must not audit, got %v", a.events)
	}
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, sql.ErrNoRows },
	}
	s := booksvc.New(m, &auditStub{})
	if err := s.Delete(context.Background(), 1); booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
