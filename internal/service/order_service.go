package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Options struct {
	Currency        currency.Unit
	Retry           RetryConfig
	BulkParallelism int
	VIPPolicy       domain.VIPPolicy
}

// OrderService creates orders and drives them through the lifecycle.
type OrderService struct {
	store  port.Store
	bus    EventBus.BusPublisher
	stats  *StatsAggregator
	opts   Options
	logger *zap.Logger
}

func NewOrderService(store port.Store, bus EventBus.BusPublisher, opts Options, logger *zap.Logger) *OrderService {
	if opts.BulkParallelism < 1 {
		opts.BulkParallelism = 1
	}

	return &OrderService{
		store:  store,
		bus:    bus,
		stats:  NewStatsAggregator(opts.VIPPolicy, logger),
		opts:   opts,
		logger: logger,
	}
}

func (s *OrderService) Stats() *StatsAggregator {
	return s.stats
}

type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderRequest struct {
	// CustomerID is the authenticated customer, nil for guest checkout.
	CustomerID *uuid.UUID
	Contact    domain.ContactSnapshot
	Items      []CreateOrderItem
}

func (r CreateOrderRequest) productIDs() []uuid.UUID {
	return lo.Uniq(lo.Map(r.Items, func(item CreateOrderItem, _ int) uuid.UUID {
		return item.ProductID
	}))
}

// CreateOrder validates the request, then prices and persists the order and
// its line items in one transaction. Nothing is written when validation fails.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	var order domain.Order

	if len(req.Items) == 0 {
		return order, domain.ValidationErrorf("order has no items")
	}

	for i, item := range req.Items {
		if err := domain.ValidateQuantity(item.Quantity); err != nil {
			return order, fmt.Errorf("item %d: %w", i, err)
		}
	}

	products, err := s.store.Products().GetProducts(ctx, req.productIDs())
	if err != nil {
		return order, fmt.Errorf("Products.GetProducts: %w", err)
	}

	if err := s.validateProducts(req, products); err != nil {
		return order, err
	}

	contact := req.Contact
	if req.CustomerID != nil {
		profile, err := s.store.Customers().GetProfile(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return order, domain.ValidationErrorf("customer %s does not exist", *req.CustomerID)
			}
			return order, fmt.Errorf("Customers.GetProfile: %w", err)
		}
		contact = contact.FillFrom(profile)
	}

	err = s.store.InTx(ctx, func(tx port.Store) error {
		var err error
		order, err = s.createOrderTx(ctx, tx, req, contact)
		return err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("store.InTx: %w", err)
	}

	s.logger.Info("order created",
		zap.Stringer("order_id", order.ID),
		zap.Stringer("total", order.Total),
		zap.Int("items", len(order.Items)))

	s.bus.Publish(domain.TopicOrderCreated, domain.OrderCreatedEvent{Order: order})

	return order, nil
}

func (s *OrderService) validateProducts(req CreateOrderRequest, products []domain.Product) error {
	byID := lo.KeyBy(products, func(p domain.Product) uuid.UUID { return p.ID })

	for _, id := range req.productIDs() {
		p, ok := byID[id]
		if !ok {
			return domain.ValidationErrorf("product %s does not exist", id)
		}
		if !p.Active {
			return domain.ValidationErrorf("product %s is not available", id)
		}
		if p.BasePrice.Currency.String() != s.opts.Currency.String() {
			return domain.ValidationErrorf("product %s is priced in %s, store currency is %s",
				id, p.BasePrice.Currency, s.opts.Currency)
		}
	}

	return nil
}

func (s *OrderService) createOrderTx(ctx context.Context, tx port.Store, req CreateOrderRequest, contact domain.ContactSnapshot) (domain.Order, error) {
	productIDs := req.productIDs()

	locked, err := tx.Products().LockProducts(ctx, productIDs)
	if err != nil {
		return domain.Order{}, fmt.Errorf("Products.LockProducts: %w", err)
	}

	if vanished, _ := lo.Difference(productIDs, locked); len(vanished) > 0 {
		return domain.Order{}, fmt.Errorf("product %s vanished: %w", vanished[0], domain.ErrConflict)
	}

	// prices come from the locked rows, not from the validation read
	products, err := tx.Products().GetProducts(ctx, productIDs)
	if err != nil {
		return domain.Order{}, fmt.Errorf("Products.GetProducts: %w", err)
	}

	byID := lo.KeyBy(products, func(p domain.Product) uuid.UUID { return p.ID })

	order, err := tx.Orders().InsertOrder(ctx, domain.NewOrder(req.CustomerID, contact, s.opts.Currency))
	if err != nil {
		return domain.Order{}, fmt.Errorf("Orders.InsertOrder: %w", err)
	}

	for _, reqItem := range req.Items {
		product, ok := byID[reqItem.ProductID]
		if !ok || !product.Active {
			return domain.Order{}, fmt.Errorf("product %s vanished: %w", reqItem.ProductID, domain.ErrConflict)
		}

		unitPrice, err := product.UnitPrice(reqItem.Quantity)
		if err != nil {
			return domain.Order{}, fmt.Errorf("product.UnitPrice: %w", err)
		}

		item, err := tx.Orders().InsertOrderItem(ctx, order.ID, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    reqItem.Quantity,
			UnitPrice:   unitPrice,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("Orders.InsertOrderItem: %w", err)
		}

		if err := order.AddItem(item); err != nil {
			return domain.Order{}, fmt.Errorf("order.AddItem: %w", err)
		}
	}

	if err := tx.Orders().SetOrderTotal(ctx, order.ID, order.Total); err != nil {
		return domain.Order{}, fmt.Errorf("Orders.SetOrderTotal: %w", err)
	}

	counted, err := s.stats.OrderCreated(ctx, tx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("stats.OrderCreated: %w", err)
	}
	order.StatsCounted = counted

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.store.Orders().GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("Orders.GetOrder: %w", err)
	}

	return order, nil
}

func (s *OrderService) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, domain.ValidationErrorf("%s", err)
	}

	orders, err := s.store.Orders().SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("Orders.SearchOrders: %w", err)
	}

	return orders, nil
}

// QuotePrice prices quantity units of an active product.
func (s *OrderService) QuotePrice(ctx context.Context, productID uuid.UUID, quantity int) (domain.PriceQuote, error) {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return domain.PriceQuote{}, err
	}

	product, err := s.store.Products().GetProduct(ctx, productID)
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("Products.GetProduct: %w", err)
	}

	if !product.Active {
		return domain.PriceQuote{}, fmt.Errorf("product %s is not active: %w", productID, domain.ErrNotFound)
	}

	return domain.QuotePrice(product, quantity)
}

// SetStock is the administrative restock operation.
func (s *OrderService) SetStock(ctx context.Context, productID uuid.UUID, stock int) error {
	if err := domain.ValidateStock(stock); err != nil {
		return err
	}

	if err := s.store.Products().SetStock(ctx, productID, stock); err != nil {
		return fmt.Errorf("Products.SetStock: %w", err)
	}

	s.logger.Info("stock set", zap.Stringer("product_id", productID), zap.Int("stock", stock))

	return nil
}

// GetCustomerStats returns the statistics of an existing customer. Customers
// without counted orders get an empty rollup.
func (s *OrderService) GetCustomerStats(ctx context.Context, customerID uuid.UUID) (domain.CustomerStats, error) {
	stats, err := s.store.Stats().GetStats(ctx, customerID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return stats, fmt.Errorf("Stats.GetStats: %w", err)
	}

	profile, err := s.store.Customers().GetProfile(ctx, customerID)
	if err != nil {
		return domain.CustomerStats{}, fmt.Errorf("Customers.GetProfile: %w", err)
	}

	stats = domain.NewCustomerStats(customerID, s.opts.Currency)
	if profile.Wholesale {
		stats.VIPStatus = domain.VIPStatusWholesale
	}

	return stats, nil
}
