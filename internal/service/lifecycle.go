package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type transitionResult struct {
	order      domain.Order
	changed    bool
	from       domain.OrderStatus
	deductions []domain.StockDeduction
}

// TransitionStatus moves the order to next. Re-applying the current status is a no-op.
// Lost compare-and-set races are retried with backoff and surface as
// domain.ErrConcurrentTransition once the attempts are exhausted.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (domain.Order, error) {
	res, err := s.transition(ctx, orderID, next)
	if err != nil {
		return domain.Order{}, err
	}

	return res.order, nil
}

func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (transitionResult, error) {
	isConcurrent := func(err error) bool {
		return errors.Is(err, domain.ErrConcurrentTransition)
	}

	res, err := retryWithBackoff(ctx, s.opts.Retry, isConcurrent, func() (transitionResult, error) {
		return s.transitionOnce(ctx, orderID, next)
	})
	if err != nil {
		return res, fmt.Errorf("transition %s to %s: %w", orderID, next, err)
	}

	if res.changed {
		s.logger.Info("order status changed",
			zap.Stringer("order_id", orderID),
			zap.String("from", string(res.from)),
			zap.String("to", string(next)))

		s.bus.Publish(domain.TopicOrderStatusChanged, domain.OrderStatusChangedEvent{
			OrderID:    orderID,
			CustomerID: res.order.CustomerID,
			From:       res.from,
			To:         next,
			Deductions: res.deductions,
			ChangedAt:  res.order.UpdatedAt,
		})
	}

	return res, nil
}

func (s *OrderService) transitionOnce(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (transitionResult, error) {
	var res transitionResult

	err := s.store.InTx(ctx, func(tx port.Store) error {
		order, err := tx.Orders().GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("Orders.GetOrder: %w", err)
		}

		plan, err := domain.PlanTransition(order.Status, next)
		if err != nil {
			return fmt.Errorf("domain.PlanTransition: %w", err)
		}

		res.from = order.Status
		if plan.NoOp {
			res.order = order
			return nil
		}

		// the status write goes first: a concurrent transition blocks here and
		// then matches zero rows, so side effects below run at most once
		if err := tx.Orders().UpdateOrderStatus(ctx, orderID, plan.From, plan.To); err != nil {
			return fmt.Errorf("Orders.UpdateOrderStatus: %w", err)
		}

		if plan.DeductStock {
			res.deductions, err = s.deductStock(ctx, tx, order)
			if err != nil {
				return err
			}
		}

		if plan.ReverseStats {
			if _, err := s.stats.OrderCancelled(ctx, tx, order); err != nil {
				return fmt.Errorf("stats.OrderCancelled: %w", err)
			}
		}

		res.order, err = tx.Orders().GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("Orders.GetOrder: %w", err)
		}
		res.changed = true

		return nil
	})
	if err != nil {
		return transitionResult{}, fmt.Errorf("store.InTx: %w", err)
	}

	return res, nil
}

// deductStock runs one ledger pass over the order items. Rows are touched in
// product id order so concurrent fulfillments lock them in the same sequence.
func (s *OrderService) deductStock(ctx context.Context, tx port.Store, order domain.Order) ([]domain.StockDeduction, error) {
	items := slices.Clone(order.Items)
	slices.SortStableFunc(items, func(a, b domain.OrderItem) int {
		return slices.Compare(a.ProductID[:], b.ProductID[:])
	})

	deductions := make([]domain.StockDeduction, 0, len(items))

	for _, item := range items {
		d, err := tx.Products().DeductStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("Products.DeductStock: %w", err)
		}

		if d.Clamped() {
			s.logger.Warn("stock underflow",
				zap.Stringer("order_id", order.ID),
				zap.Stringer("product_id", item.ProductID),
				zap.Int("requested", d.Requested),
				zap.Int("available", d.Previous))
		}

		deductions = append(deductions, d)
	}

	return deductions, nil
}

type BulkFailure struct {
	OrderID uuid.UUID
	Err     error
}

type BulkResult struct {
	Succeeded []uuid.UUID
	// Skipped orders already had the requested status.
	Skipped []uuid.UUID
	Failed  []BulkFailure
}

// BulkTransition applies next to every order in its own transaction.
// A failing order does not stop the others.
func (s *OrderService) BulkTransition(ctx context.Context, orderIDs []uuid.UUID, next domain.OrderStatus) (BulkResult, error) {
	var result BulkResult

	if len(orderIDs) == 0 {
		return result, domain.ValidationErrorf("no orders selected")
	}
	if _, err := domain.ToOrderStatus(string(next)); err != nil {
		return result, err
	}

	started := time.Now()

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BulkParallelism)

	for _, orderID := range lo.Uniq(orderIDs) {
		g.Go(func() error {
			res, err := s.transition(gctx, orderID, next)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				result.Failed = append(result.Failed, BulkFailure{OrderID: orderID, Err: err})
			case res.changed:
				result.Succeeded = append(result.Succeeded, orderID)
			default:
				result.Skipped = append(result.Skipped, orderID)
			}

			// per-order failures are reported, only cancellation stops the batch
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	s.logger.Info("bulk status change",
		zap.String("status", string(next)),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)),
		zap.Duration("took", time.Since(started)))

	return result, nil
}
