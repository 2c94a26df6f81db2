package audit

import (
	"context"
	"time"

	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const breakerOpenTimeout = 30 * time.Second

// breakerSink stops calling a failing sink until the breaker half-opens.
type breakerSink struct {
	next port.AuditSink
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerSink(next port.AuditSink, trips uint32, logger *zap.Logger) port.AuditSink {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "audit-sink",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trips
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &breakerSink{next: next, cb: cb}
}

func (s *breakerSink) Append(ctx context.Context, row domain.AuditRow) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.Append(ctx, row)
	})
	return err
}

func (s *breakerSink) Close() error {
	return s.next.Close()
}
