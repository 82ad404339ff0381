package rental

import (
	"context"

	"github.com/jzakotnik/openlibry-sub000/model"
)

// Reporter produces the overdue list staff use for reminder rounds.
type Reporter interface {
	Overdue(ctx context.Context) ([]model.Book, error)
}

type reporter struct {
	store Store
	clock Clock
}

func NewReporter(store Store, clock Clock) Reporter {
	if clock == nil {
		clock = SystemClock()
	}
	return &reporter{store: store, clock: clock}
}

func (r *reporter) Overdue(ctx context.Context) ([]model.Book, error) {
	return r.store.ListOverdue(ctx, r.clock.Now().UTC())
}
