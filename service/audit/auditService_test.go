package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jzakotnik/openlibry-sub000/model"
)

type mockRepo struct {
	appendFn func(ctx context.Context, eventType, eventContent string, createdAt time.Time) error
	appended []string
}

func (m *mockRepo) Append(ctx context.Context, eventType, eventContent string, createdAt time.Time) error {
	if m.appendFn != nil {
		if err := m.appendFn(ctx, eventType, eventContent, createdAt); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, eventContent)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]model.AuditRecord, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecord_SerializesContent(t *testing.T) {
	m := &mockRepo{}
	svc := New(m, discardLogger())

	svc.Record(context.Background(), model.EventRentBook, map[string]any{"book_id": 42})

	require.Len(t, m.appended, 1)
	require.JSONEq(t, `{"book_id":42}`, m.appended[0])
}

func TestRecord_AppendFailureIsSwallowed(t *testing.T) {
	m := &mockRepo{
		appendFn: func(ctx context.Context, eventType, eventContent string, createdAt time.Time) error {
			return errors.New("disk full")
		},
	}
	svc := New(m, discardLogger())

	// must not panic and must not propagate; the rental mutation that
	// triggered this record already committed
	svc.Record(context.Background(), model.EventReturnBook, map[string]any{"book_id": 1})
	require.Empty(t, m.appended)
}

func TestRecord_UnmarshalableContent(t *testing.T) {
	m := &mockRepo{}
	svc := New(m, discardLogger())

	svc.Record(context.Background(), model.EventRentBook, func() {})
	require.Empty(t, m.appended)
}
