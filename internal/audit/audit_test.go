package audit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/asaskevich/EventBus"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/config"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type recordingSink struct {
	mu     sync.Mutex
	rows   []domain.AuditRow
	err    error
	calls  int
	closed bool
}

func (s *recordingSink) Append(_ context.Context, row domain.AuditRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, row)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *recordingSink) snapshot() ([]domain.AuditRow, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.AuditRow(nil), s.rows...), s.calls
}

func randomAuditRow() domain.AuditRow {
	order := domain.Order{
		ID:     uuid.New(),
		Status: domain.OrderStatusPending,
		Total:  domain.Money{Amount: decimal.RequireFromString("29.00"), Currency: currency.USD},
		Contact: domain.ContactSnapshot{
			Name:    gofakeit.Name(),
			Phone:   gofakeit.Phone(),
			Email:   gofakeit.Email(),
			City:    gofakeit.City(),
			Address: gofakeit.Street(),
		},
		Items: []domain.OrderItem{
			{ProductName: "A", Quantity: 3, UnitPrice: domain.Money{Amount: decimal.RequireFromString("5"), Currency: currency.USD}},
			{ProductName: "B", Quantity: 2, UnitPrice: domain.Money{Amount: decimal.RequireFromString("7"), Currency: currency.USD}},
		},
		CreatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	return domain.NewAuditRow(order)
}

func TestForwarder(t *testing.T) {
	bus := EventBus.New()
	sink := &recordingSink{}

	f, err := NewForwarder(bus, sink, 2, time.Second, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, f.Start())

	order := domain.Order{
		ID:        uuid.New(),
		Total:     domain.Money{Amount: decimal.RequireFromString("12.50"), Currency: currency.USD},
		CreatedAt: time.Now(),
	}
	bus.Publish(domain.TopicOrderCreated, domain.OrderCreatedEvent{Order: order})

	require.Eventually(t, func() bool {
		rows, _ := sink.snapshot()
		return len(rows) == 1
	}, 5*time.Second, 10*time.Millisecond)

	rows, _ := sink.snapshot()
	assert.Equal(t, order.ID.String(), rows[0].OrderID)
	assert.Equal(t, "12.50", rows[0].Total)

	require.NoError(t, f.Close())
	assert.True(t, sink.closed)

	// unsubscribed after Close
	bus.Publish(domain.TopicOrderCreated, domain.OrderCreatedEvent{Order: order})
	_, calls := sink.snapshot()
	assert.Equal(t, 1, calls)
}

func TestForwarder_SinkFailureIsSwallowed(t *testing.T) {
	bus := EventBus.New()
	sink := &recordingSink{err: errors.New("sheet unavailable")}

	f, err := NewForwarder(bus, sink, 1, time.Second, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, f.Start())

	assert.NotPanics(t, func() {
		bus.Publish(domain.TopicOrderCreated, domain.OrderCreatedEvent{Order: domain.Order{ID: uuid.New()}})
	})

	require.Eventually(t, func() bool {
		_, calls := sink.snapshot()
		return calls == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, f.Close())
}

func TestCSVSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	sink := NewCSVSink(path)

	row1, row2 := randomAuditRow(), randomAuditRow()
	require.NoError(t, sink.Append(t.Context(), row1))
	require.NoError(t, sink.Append(t.Context(), row2))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var rows []*domain.AuditRow
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))

	require.Len(t, rows, 2)
	assert.Equal(t, row1, *rows[0])
	assert.Equal(t, row2, *rows[1])
	assert.Equal(t, "A x3 @ 5.00 | B x2 @ 7.00", rows[0].ItemsDescription)
	assert.Equal(t, "2024-03-01 10:30:00", rows[0].CreatedAt)
}

func TestXLSXSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.xlsx")
	sink := NewXLSXSink(path)

	row1, row2 := randomAuditRow(), randomAuditRow()
	require.NoError(t, sink.Append(t.Context(), row1))
	require.NoError(t, sink.Append(t.Context(), row2))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)

	rows := f.GetRows(xlsxSheet)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.AuditHeader(), rows[0])
	assert.Equal(t, row1.Values(), rows[1])
	assert.Equal(t, row2.Values(), rows[2])
}

func TestSink_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	dir := t.TempDir()

	require.ErrorIs(t, NewCSVSink(filepath.Join(dir, "a.csv")).Append(ctx, randomAuditRow()), context.Canceled)
	require.ErrorIs(t, NewXLSXSink(filepath.Join(dir, "a.xlsx")).Append(ctx, randomAuditRow()), context.Canceled)
}

func TestBreakerSink(t *testing.T) {
	next := &recordingSink{err: errors.New("down")}
	sink := NewBreakerSink(next, 2, zap.NewNop())

	for range 2 {
		require.EqualError(t, sink.Append(t.Context(), randomAuditRow()), "down")
	}

	err := sink.Append(t.Context(), randomAuditRow())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)

	_, calls := next.snapshot()
	assert.Equal(t, 2, calls, "open breaker must not reach the sink")
}

func TestNewSink(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		cfg       config.AuditConfig
		wantError string
	}{
		{name: "none: ok", cfg: config.AuditConfig{Sink: config.AuditSinkNone}},
		{name: "csv: ok", cfg: config.AuditConfig{Sink: config.AuditSinkCSV, Path: filepath.Join(dir, "a.csv")}},
		{name: "xlsx: ok", cfg: config.AuditConfig{Sink: config.AuditSinkXLSX, Path: filepath.Join(dir, "a.xlsx")}},
		{name: "kafka: ok", cfg: config.AuditConfig{Sink: config.AuditSinkKafka, Topic: "audit", Brokers: []string{"127.0.0.1:9092"}}},
		{name: "unknown: fail", cfg: config.AuditConfig{Sink: "sheets"}, wantError: `audit sink "sheets" is unknown`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := NewSink(tt.cfg, zap.NewNop())
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			require.NoError(t, sink.Close())
		})
	}
}
