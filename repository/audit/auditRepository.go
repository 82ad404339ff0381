// repository/audit/auditRepository.go
package audit

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jzakotnik/openlibry-sub000/model"
)

// Filter narrows the audit listing; zero values mean "no constraint".
type Filter struct {
	EventType string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

type Repo interface {
	Append(ctx context.Context, eventType, eventContent string, createdAt time.Time) error
	List(ctx context.Context, f Filter) ([]model.AuditRecord, error)
}

type repo struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

func New(db *sqlx.DB) Repo {
	return &repo{db: db, dialect: goqu.Dialect("postgres")}
}

func (r *repo) Append(ctx context.Context, eventType, eventContent string, createdAt time.Time) error {
	const q = `
		INSERT INTO audit_records (event_type, event_content, created_at)
		VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, q, eventType, eventContent, createdAt); err != nil {
		return errors.Wrap(err, "append audit record")
	}
	return nil
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.AuditRecord, error) {
	ds := r.dialect.
		From("audit_records").
		Select("id", "event_type", "event_content", "created_at").
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())

	if f.EventType != "" {
		ds = ds.Where(goqu.C("event_type").Eq(f.EventType))
	}
	if f.Since != nil {
		ds = ds.Where(goqu.C("created_at").Gte(*f.Since))
	}
	if f.Until != nil {
		ds = ds.Where(goqu.C("created_at").Lt(*f.Until))
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	ds = ds.Limit(uint(limit))

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build audit query")
	}

	var out []model.AuditRecord
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, errors.Wrap(err, "list audit records")
	}
	return out, nil
}
