package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event bus topics. Events are published after the transaction commits.
const (
	TopicOrderCreated       = "order:created"
	TopicOrderStatusChanged = "order:status_changed"
)

type OrderCreatedEvent struct {
	Order Order
}

type OrderStatusChangedEvent struct {
	OrderID    uuid.UUID
	CustomerID *uuid.UUID
	From       OrderStatus
	To         OrderStatus
	Deductions []StockDeduction
	ChangedAt  time.Time
}
