package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// InsertOrder persists the header only and returns it with the generated fields set.
	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	InsertOrderItem(ctx context.Context, orderID uuid.UUID, item domain.OrderItem) (domain.OrderItem, error)
	SetOrderTotal(ctx context.Context, orderID uuid.UUID, total domain.Money) error

	// UpdateOrderStatus writes next only while the stored status still equals expected.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, expected, next domain.OrderStatus) error

	MarkStatsCounted(ctx context.Context, orderID uuid.UUID) (bool, error)
	UnmarkStatsCounted(ctx context.Context, orderID uuid.UUID) (bool, error)
}
