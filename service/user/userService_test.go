package usersvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jzakotnik/openlibry-sub000/model"
)

type mockRepo struct {
	createFn    func(ctx context.Context, firstName, lastName string, grade *string) (int64, error)
	getFn       func(ctx context.Context, id int64) (*model.User, error)
	listFn      func(ctx context.Context) ([]model.User, error)
	updateFn    func(ctx context.Context, id int64, firstName, lastName string, grade *string) error
	setActiveFn func(ctx context.Context, id int64, active bool) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, firstName, lastName string, grade *string) (int64, error) {
	if m.createFn == nil {
		return 1, nil
	}
	return m.createFn(ctx, firstName, lastName, grade)
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	if m.getFn == nil {
		return &model.User{ID: id, FirstName: "Kim", LastName: "Sato", Active: true}, nil
	}
	return m.getFn(ctx, id)
}

func (m *mockRepo) List(ctx context.Context) ([]model.User, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *mockRepo) Update(ctx context.Context, id int64, firstName, lastName string, grade *string) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, id, firstName, lastName, grade)
}

func (m *mockRepo) SetActive(ctx context.Context, id int64, active bool) error {
	if m.setActiveFn == nil {
		return nil
	}
	return m.setActiveFn(ctx, id, active)
}

type mockRentals struct {
	books []model.Book
}

func (m *mockRentals) RentedBooks(ctx context.Context, userID int64) ([]model.Book, error) {
	return m.books, nil
}

type auditStub struct{ events []string }

func (a *auditStub) Record(ctx context.Context, eventType string, content any) {
	a.events = append(a.events, eventType)
}

func TestCreate_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, &mockRentals{}, &auditStub{})

	_, err := svc.Create(context.Background(), "", "Sato", nil)
	require.Equal(t, ErrBadInput, Code(err))

	_, err = svc.Create(context.Background(), "Kim", "", nil)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestCreate_Audits(t *testing.T) {
	a := &auditStub{}
	svc := New(&mockRepo{}, &mockRentals{}, a)

	id, err := svc.Create(context.Background(), "Kim", "Sato", nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.Equal(t, []string{model.EventCreateUser}, a.events)
}

func TestGet_DerivedRentals(t *testing.T) {
	uid := int64(5)
	rentals := &mockRentals{books: []model.Book{
		{ID: 11, Title: "Momo", RentalStatus: model.StatusRented, UserID: &uid},
	}}
	svc := New(&mockRepo{}, rentals, &auditStub{})

	d, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(5), d.User.ID)
	require.Len(t, d.RentedBooks, 1)
	require.Equal(t, int64(11), d.RentedBooks[0].ID)
}

func TestGet_NotFound(t *testing.T) {
	m := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}
	svc := New(m, &mockRentals{}, &auditStub{})

	_, err := svc.Get(context.Background(), 99)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestDeactivate(t *testing.T) {
	var gotActive *bool
	m := &mockRepo{
		setActiveFn: func(ctx context.Context, id int64, active bool) error {
			gotActive = &active
			return nil
		},
	}
	a := &auditStub{}
	svc := New(m, &mockRentals{}, a)

	require.NoError(t, svc.Deactivate(context.Background(), 5))
	require.NotNil(t, gotActive)
	require.False(t, *gotActive)
	require.Equal(t, []string{model.EventDisableUser}, a.events)
}
