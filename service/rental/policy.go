// service/rental/policy.go
package rental

import (
	"time"

	"github.com/jzakotnik/openlibry-sub000/model"
)

// AddDays returns base plus the given number of calendar days. All due-date
// arithmetic goes through here, normalized to UTC, so the rental and
// extension paths cannot drift apart across timezones.
func AddDays(base time.Time, days int) time.Time {
	return base.UTC().AddDate(0, 0, days)
}

// CanExtend reports whether another extension is allowed. Pure so the UI
// layer and tests can evaluate it on a snapshot without a store.
func CanExtend(b *model.Book, maxExtensions int) bool {
	return b.RentalStatus == model.StatusRented && b.RenewalCount < maxExtensions
}

// IsOverdue reports whether a rented book is past its due date. A book due
// exactly now is not overdue.
func IsOverdue(b *model.Book, now time.Time) bool {
	return b.RentalStatus == model.StatusRented && b.DueDate != nil && now.After(*b.DueDate)
}
