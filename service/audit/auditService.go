// service/audit/auditService.go
package audit

import (
	"context"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/jzakotnik/openlibry-sub000/model"
	arepo "github.com/jzakotnik/openlibry-sub000/repository/audit"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Filter = arepo.Filter

type Repo interface {
	Append(ctx context.Context, eventType, eventContent string, createdAt time.Time) error
	List(ctx context.Context, f Filter) ([]model.AuditRecord, error)
}

type Service interface {
	// Record appends an audit record. Best-effort: failures are logged
	// for the operator and never propagated, so an audit outage cannot
	// roll back or fail a rental mutation.
	Record(ctx context.Context, eventType string, content any)

	List(ctx context.Context, f Filter) ([]model.AuditRecord, error)
}

type service struct {
	r   Repo
	log *slog.Logger
	now func() time.Time
}

func New(r Repo, log *slog.Logger) Service {
	return &service{r: r, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Record(ctx context.Context, eventType string, content any) {
	payload, err := json.MarshalToString(content)
	if err != nil {
		s.log.Error("audit marshal failed", "event_type", eventType, "err", err)
		return
	}
	if err := s.r.Append(ctx, eventType, payload, s.now()); err != nil {
		s.log.Error("audit append failed", "event_type", eventType, "err", err)
	}
}

func (s *service) List(ctx context.Context, f Filter) ([]model.AuditRecord, error) {
	return s.r.List(ctx, f)
}
