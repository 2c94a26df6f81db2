package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/ordercore/internal/db"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("q.GetOrder: order %s: %w", orderID, domain.ErrNotFound)
			}
			return o, fmt.Errorf("q.GetOrder: %w", err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, []uuid.UUID{orderID})
		if err != nil {
			return o, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		domainOrder, err := mapDBOrderToDomain(dbOrder, dbOrderItems)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string {
		return string(s)
	})

	var createdAfter, createdBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	return db.SearchOrdersParams{
		Ids:           nilSliceIfEmpty(filter.IDs),
		CustomerIds:   nilSliceIfEmpty(filter.CustomerIDs),
		Statuses:      nilSliceIfEmpty(statuses),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
		MaxRows:       int32(filter.EffectiveLimit()),
	}
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	return withTx(ctx, r.dbtx, func(q *db.Queries) ([]domain.Order, error) {
		dbOrders, err := q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
		if err != nil {
			return nil, fmt.Errorf("q.SearchOrders: %w", err)
		}

		if len(dbOrders) == 0 {
			return nil, nil
		}

		orderIDs := lo.Map(dbOrders, func(o db.Order, _ int) uuid.UUID {
			return o.ID
		})

		dbOrderItems, err := q.GetOrderItems(ctx, orderIDs)
		if err != nil {
			return nil, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		itemsByOrder := lo.GroupBy(dbOrderItems, func(row db.GetOrderItemsRow) uuid.UUID {
			return row.OrderID
		})

		// keep the ordering of the search query
		orders := make([]domain.Order, 0, len(dbOrders))
		for _, dbOrder := range dbOrders {
			order, err := mapDBOrderToDomain(dbOrder, itemsByOrder[dbOrder.ID])
			if err != nil {
				return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
			}
			orders = append(orders, order)
		}

		return orders, nil
	})
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	row, err := r.q.InsertOrder(ctx, db.InsertOrderParams{
		CustomerID:      order.CustomerID,
		Status:          string(order.Status),
		TotalAmount:     order.Total.Amount,
		TotalCurrency:   order.Total.Currency.String(),
		CustomerName:    order.Contact.Name,
		CustomerPhone:   order.Contact.Phone,
		CustomerEmail:   order.Contact.Email,
		CustomerCity:    order.Contact.City,
		CustomerAddress: order.Contact.Address,
	})
	if err != nil {
		return order, fmt.Errorf("q.InsertOrder: %w", mapConstraintError(err))
	}

	order.ID = row.ID
	order.CreatedAt = row.CreatedAt
	order.UpdatedAt = row.UpdatedAt

	return order, nil
}

func (r *orderRepository) InsertOrderItem(ctx context.Context, orderID uuid.UUID, item domain.OrderItem) (domain.OrderItem, error) {
	if err := domain.ValidateQuantity(item.Quantity); err != nil {
		return item, err
	}

	row, err := r.q.InsertOrderItem(ctx, db.InsertOrderItemParams{
		OrderID:           orderID,
		ProductID:         item.ProductID,
		Quantity:          int32(item.Quantity),
		UnitPriceAmount:   item.UnitPrice.Amount,
		UnitPriceCurrency: item.UnitPrice.Currency.String(),
	})
	if err != nil {
		return item, fmt.Errorf("q.InsertOrderItem: %w", mapConstraintError(err))
	}

	item.ID = row.ID
	item.CreatedAt = row.CreatedAt

	return item, nil
}

func (r *orderRepository) SetOrderTotal(ctx context.Context, orderID uuid.UUID, total domain.Money) error {
	cmdTag, err := r.q.SetOrderTotal(ctx, db.SetOrderTotalParams{
		ID:          orderID,
		TotalAmount: total.Round().Amount,
	})
	if err != nil {
		return fmt.Errorf("q.SetOrderTotal: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SetOrderTotal: order %s: %w", orderID, domain.ErrNotFound)
	}

	return nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, expected, next domain.OrderStatus) error {
	cmdTag, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		Status:         string(next),
		ID:             orderID,
		ExpectedStatus: string(expected),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrderStatus: order %s is no longer %s: %w", orderID, expected, domain.ErrConcurrentTransition)
	}

	return nil
}

func (r *orderRepository) MarkStatsCounted(ctx context.Context, orderID uuid.UUID) (bool, error) {
	cmdTag, err := r.q.MarkOrderStatsCounted(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("q.MarkOrderStatsCounted: %w", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

func (r *orderRepository) UnmarkStatsCounted(ctx context.Context, orderID uuid.UUID) (bool, error) {
	cmdTag, err := r.q.UnmarkOrderStatsCounted(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("q.UnmarkOrderStatsCounted: %w", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

func mapGetOrderItemsRowToDomain(row db.GetOrderItemsRow) (domain.OrderItem, error) {
	parsedCurrency, err := currency.ParseISO(row.UnitPriceCurrency)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.UnitPriceCurrency, err)
	}

	return domain.OrderItem{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Quantity:    int(row.Quantity),
		UnitPrice:   domain.Money{Amount: row.UnitPriceAmount, Currency: parsedCurrency},
		CreatedAt:   row.CreatedAt,
	}, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderItems []db.GetOrderItemsRow) (domain.Order, error) {
	var o domain.Order

	var items []domain.OrderItem
	for _, row := range dbOrderItems {
		item, err := mapGetOrderItemsRowToDomain(row)
		if err != nil {
			return o, fmt.Errorf("mapGetOrderItemsRowToDomain: %w", err)
		}
		items = append(items, item)
	}

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	parsedCurrency, err := currency.ParseISO(dbOrder.TotalCurrency)
	if err != nil {
		return o, fmt.Errorf("currency[%s] is not valid: %w", dbOrder.TotalCurrency, err)
	}

	return domain.Order{
		ID:         dbOrder.ID,
		CustomerID: dbOrder.CustomerID,
		Status:     status,
		Total:      domain.Money{Amount: dbOrder.TotalAmount, Currency: parsedCurrency},
		Contact: domain.ContactSnapshot{
			Name:    dbOrder.CustomerName,
			Phone:   dbOrder.CustomerPhone,
			Email:   dbOrder.CustomerEmail,
			City:    dbOrder.CustomerCity,
			Address: dbOrder.CustomerAddress,
		},
		Items:        items,
		StatsCounted: dbOrder.StatsCounted,
		Version:      int(dbOrder.Version),
		CreatedAt:    dbOrder.CreatedAt,
		UpdatedAt:    dbOrder.UpdatedAt,
	}, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
