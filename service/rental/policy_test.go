package rental

import (
	"testing"
	"time"

	"github.com/jzakotnik/openlibry-sub000/model"
)

func TestAddDays(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	got := AddDays(base, 21)
	want := time.Date(2024, time.January, 22, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("AddDays(+21) = %v; want %v", got, want)
	}

	got = AddDays(base, 14)
	want = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("AddDays(+14) = %v; want %v", got, want)
	}
}

func TestAddDays_MonthBoundary(t *testing.T) {
	base := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)
	got := AddDays(base, 14)
	// 2024 is a leap year
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("AddDays over leap February = %v; want %v", got, want)
	}
}

func TestAddDays_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	base := time.Date(2024, time.January, 1, 23, 0, 0, 0, loc)
	got := AddDays(base, 1)
	if got.Location() != time.UTC {
		t.Fatalf("result not in UTC: %v", got.Location())
	}
	if !got.Equal(base.AddDate(0, 0, 1)) {
		t.Fatalf("day arithmetic changed the instant: %v", got)
	}
}

func TestCanExtend(t *testing.T) {
	uid := int64(7)
	due := time.Date(2024, time.January, 22, 0, 0, 0, 0, time.UTC)

	rented := &model.Book{RentalStatus: model.StatusRented, UserID: &uid, DueDate: &due}
	if !CanExtend(rented, 2) {
		t.Fatal("rented with 0 renewals should be extendable")
	}

	rented.RenewalCount = 2
	if CanExtend(rented, 2) {
		t.Fatal("at the cap, extend must be disabled")
	}

	available := &model.Book{RentalStatus: model.StatusAvailable}
	if CanExtend(available, 2) {
		t.Fatal("available book is not extendable")
	}

	lost := &model.Book{RentalStatus: model.StatusLost}
	if CanExtend(lost, 2) {
		t.Fatal("administrative status is not extendable")
	}
}

func TestIsOverdue(t *testing.T) {
	uid := int64(7)
	due := time.Date(2024, time.January, 22, 0, 0, 0, 0, time.UTC)
	b := &model.Book{RentalStatus: model.StatusRented, UserID: &uid, DueDate: &due}

	if IsOverdue(b, due.Add(-time.Hour)) {
		t.Fatal("before due date is not overdue")
	}
	if IsOverdue(b, due) {
		t.Fatal("exactly at the due date is not overdue")
	}
	if !IsOverdue(b, due.Add(time.Second)) {
		t.Fatal("past due date is overdue")
	}

	available := &model.Book{RentalStatus: model.StatusAvailable}
	if IsOverdue(available, due.Add(time.Hour)) {
		t.Fatal("available book is never overdue")
	}
}
