package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"github.com/segmentio/kafka-go"
)

const auditEventType = "order.created"

type kafkaSink struct {
	writer *kafka.Writer
}

func NewKafkaSink(topic string, brokers ...string) port.AuditSink {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &kafkaSink{writer: w}
}

func (s *kafkaSink) Append(ctx context.Context, row domain.AuditRow) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(row.OrderID), // order id keeps rows of one order on one partition
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(auditEventType)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}

func (s *kafkaSink) Close() error {
	return s.writer.Close()
}
