package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Forwarder copies created orders to the audit sink off the request path.
// Rows that cannot be delivered are logged and dropped.
type Forwarder struct {
	bus     EventBus.Bus
	pool    *ants.Pool
	sink    port.AuditSink
	timeout time.Duration
	logger  *zap.Logger
}

func NewForwarder(bus EventBus.Bus, sink port.AuditSink, workers int, timeout time.Duration, logger *zap.Logger) (*Forwarder, error) {
	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			logger.Error("audit worker panic", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("ants.NewPool: %w", err)
	}

	return &Forwarder{
		bus:     bus,
		pool:    pool,
		sink:    sink,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (f *Forwarder) Start() error {
	if err := f.bus.Subscribe(domain.TopicOrderCreated, f.onOrderCreated); err != nil {
		return fmt.Errorf("bus.Subscribe: %w", err)
	}
	return nil
}

func (f *Forwarder) onOrderCreated(event domain.OrderCreatedEvent) {
	row := domain.NewAuditRow(event.Order)

	err := f.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()

		if err := f.sink.Append(ctx, row); err != nil {
			f.logger.Error("audit append failed, row dropped",
				zap.String("order_id", row.OrderID), zap.Error(err))
		}
	})
	if err != nil {
		f.logger.Error("audit submit failed, row dropped",
			zap.String("order_id", row.OrderID), zap.Error(err))
	}
}

// Close unsubscribes, waits for queued rows up to the timeout and closes the sink.
func (f *Forwarder) Close() error {
	if err := f.bus.Unsubscribe(domain.TopicOrderCreated, f.onOrderCreated); err != nil {
		f.logger.Warn("bus.Unsubscribe", zap.Error(err))
	}

	if err := f.pool.ReleaseTimeout(f.timeout); err != nil {
		f.logger.Warn("audit pool release timed out", zap.Error(err))
	}

	if err := f.sink.Close(); err != nil {
		return fmt.Errorf("sink.Close: %w", err)
	}

	return nil
}
