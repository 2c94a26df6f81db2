package audit

import (
	"context"
	"fmt"

	"github.com/nikolayk812/ordercore/internal/config"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"go.uber.org/zap"
)

type nopSink struct {
	logger *zap.Logger
}

func NewNopSink(logger *zap.Logger) port.AuditSink {
	return &nopSink{logger: logger}
}

func (s *nopSink) Append(_ context.Context, row domain.AuditRow) error {
	s.logger.Debug("audit row discarded", zap.String("order_id", row.OrderID))
	return nil
}

func (s *nopSink) Close() error {
	return nil
}

// NewSink builds the configured sink. External sinks are guarded by a circuit breaker.
func NewSink(cfg config.AuditConfig, logger *zap.Logger) (port.AuditSink, error) {
	var sink port.AuditSink

	switch cfg.Sink {
	case config.AuditSinkNone, "":
		return NewNopSink(logger), nil
	case config.AuditSinkCSV:
		sink = NewCSVSink(cfg.Path)
	case config.AuditSinkXLSX:
		sink = NewXLSXSink(cfg.Path)
	case config.AuditSinkKafka:
		sink = NewKafkaSink(cfg.Topic, cfg.Brokers...)
	default:
		return nil, fmt.Errorf("audit sink %q is unknown", cfg.Sink)
	}

	return NewBreakerSink(sink, uint32(max(cfg.BreakerTrips, 1)), logger), nil
}
