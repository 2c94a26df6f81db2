package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"go.uber.org/zap"
)

// StatsAggregator keeps customer_stats in step with the order history.
// Every method expects a transactional store and relies on the
// orders.stats_counted marker so repeated calls for one order are no-ops.
type StatsAggregator struct {
	policy domain.VIPPolicy
	logger *zap.Logger
}

func NewStatsAggregator(policy domain.VIPPolicy, logger *zap.Logger) *StatsAggregator {
	return &StatsAggregator{policy: policy, logger: logger}
}

// OrderCreated counts a customer-owned order. It reports whether the order was counted now.
func (a *StatsAggregator) OrderCreated(ctx context.Context, tx port.Store, order domain.Order) (bool, error) {
	if order.CustomerID == nil {
		return false, nil
	}

	flipped, err := tx.Orders().MarkStatsCounted(ctx, order.ID)
	if err != nil {
		return false, fmt.Errorf("Orders.MarkStatsCounted: %w", err)
	}
	if !flipped {
		return false, nil
	}

	err = a.update(ctx, tx, *order.CustomerID, order, func(s domain.CustomerStats) domain.CustomerStats {
		return s.CountOrder(order.Total, order.CreatedAt)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// OrderCancelled reverses a previously counted order. It reports whether anything was reversed.
func (a *StatsAggregator) OrderCancelled(ctx context.Context, tx port.Store, order domain.Order) (bool, error) {
	if order.CustomerID == nil {
		return false, nil
	}

	flipped, err := tx.Orders().UnmarkStatsCounted(ctx, order.ID)
	if err != nil {
		return false, fmt.Errorf("Orders.UnmarkStatsCounted: %w", err)
	}
	if !flipped {
		return false, nil
	}

	err = a.update(ctx, tx, *order.CustomerID, order, func(s domain.CustomerStats) domain.CustomerStats {
		return s.ReverseOrder(order.Total)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (a *StatsAggregator) update(ctx context.Context, tx port.Store, customerID uuid.UUID, order domain.Order,
	apply func(domain.CustomerStats) domain.CustomerStats) error {
	if err := tx.Stats().EnsureStats(ctx, customerID, order.Total.Currency); err != nil {
		return fmt.Errorf("Stats.EnsureStats: %w", err)
	}

	stats, err := tx.Stats().GetStatsForUpdate(ctx, customerID)
	if err != nil {
		return fmt.Errorf("Stats.GetStatsForUpdate: %w", err)
	}

	if !stats.TotalSpent.SameCurrency(order.Total) {
		return fmt.Errorf("statistics currency %s differs from order currency %s: %w",
			stats.TotalSpent.Currency, order.Total.Currency, domain.ErrConflict)
	}

	updated := apply(stats)
	updated.VIPStatus = a.policy.Classify(updated)

	if updated.VIPStatus != stats.VIPStatus {
		a.logger.Info("customer reclassified",
			zap.Stringer("customer_id", customerID),
			zap.String("from", string(stats.VIPStatus)),
			zap.String("to", string(updated.VIPStatus)))
	}

	if err := tx.Stats().UpdateStats(ctx, updated); err != nil {
		return fmt.Errorf("Stats.UpdateStats: %w", err)
	}

	return nil
}

// Reconcile rewrites statistics rows that disagree with the counted orders
// and returns how many were repaired.
func (a *StatsAggregator) Reconcile(ctx context.Context, store port.Store) (int, error) {
	drifts, err := store.Stats().FindDrift(ctx)
	if err != nil {
		return 0, fmt.Errorf("Stats.FindDrift: %w", err)
	}

	repaired := 0
	var errs []error

	for _, drift := range drifts {
		err := store.InTx(ctx, func(tx port.Store) error {
			stats, err := tx.Stats().GetStatsForUpdate(ctx, drift.CustomerID)
			if err != nil {
				return fmt.Errorf("Stats.GetStatsForUpdate: %w", err)
			}

			stats.OrdersCount = drift.ExpectedOrdersCount
			stats.TotalSpent.Amount = drift.ExpectedTotalSpent
			stats.VIPStatus = a.policy.Classify(stats)

			return tx.Stats().UpdateStats(ctx, stats)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return repaired, err
			}
			errs = append(errs, fmt.Errorf("customer %s: %w", drift.CustomerID, err))
			continue
		}

		repaired++

		a.logger.Warn("customer statistics drift repaired",
			zap.Stringer("customer_id", drift.CustomerID),
			zap.Int("orders_count", drift.OrdersCount),
			zap.Int("expected_orders_count", drift.ExpectedOrdersCount),
			zap.Stringer("total_spent", drift.TotalSpent),
			zap.Stringer("expected_total_spent", drift.ExpectedTotalSpent))
	}

	return repaired, errors.Join(errs...)
}
