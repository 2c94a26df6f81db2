package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/ordercore/internal/db"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
	"golang.org/x/text/currency"
)

type customerRepository struct {
	q *db.Queries
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{q: db.New(pool)}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{q: db.New(tx)}
}

func (r *customerRepository) GetProfile(ctx context.Context, customerID uuid.UUID) (domain.CustomerProfile, error) {
	c, err := r.q.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CustomerProfile{}, fmt.Errorf("q.GetCustomer: customer %s: %w", customerID, domain.ErrNotFound)
		}
		return domain.CustomerProfile{}, fmt.Errorf("q.GetCustomer: %w", err)
	}

	return domain.CustomerProfile{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		City:      c.City,
		Address:   c.Address,
		Wholesale: c.Wholesale,
	}, nil
}

func (r *customerRepository) InsertCustomer(ctx context.Context, profile domain.CustomerProfile) (uuid.UUID, error) {
	id, err := r.q.InsertCustomer(ctx, db.InsertCustomerParams{
		Name:      profile.Name,
		Phone:     profile.Phone,
		Email:     profile.Email,
		City:      profile.City,
		Address:   profile.Address,
		Wholesale: profile.Wholesale,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertCustomer: %w", err)
	}

	return id, nil
}

type customerStatsRepository struct {
	q *db.Queries
}

func NewCustomerStats(pool *pgxpool.Pool) port.CustomerStatsRepository {
	return &customerStatsRepository{q: db.New(pool)}
}

func NewCustomerStatsWithTx(tx pgx.Tx) port.CustomerStatsRepository {
	return &customerStatsRepository{q: db.New(tx)}
}

func (r *customerStatsRepository) EnsureStats(ctx context.Context, customerID uuid.UUID, cur currency.Unit) error {
	if _, err := r.q.EnsureCustomerStats(ctx, db.EnsureCustomerStatsParams{
		Currency:   cur.String(),
		CustomerID: customerID,
	}); err != nil {
		return fmt.Errorf("q.EnsureCustomerStats: %w", err)
	}

	return nil
}

func (r *customerStatsRepository) GetStats(ctx context.Context, customerID uuid.UUID) (domain.CustomerStats, error) {
	s, err := r.q.GetCustomerStats(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CustomerStats{}, fmt.Errorf("q.GetCustomerStats: customer %s: %w", customerID, domain.ErrNotFound)
		}
		return domain.CustomerStats{}, fmt.Errorf("q.GetCustomerStats: %w", err)
	}

	return mapDBCustomerStatToDomain(s)
}

func (r *customerStatsRepository) GetStatsForUpdate(ctx context.Context, customerID uuid.UUID) (domain.CustomerStats, error) {
	s, err := r.q.GetCustomerStatsForUpdate(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CustomerStats{}, fmt.Errorf("q.GetCustomerStatsForUpdate: customer %s: %w", customerID, domain.ErrNotFound)
		}
		return domain.CustomerStats{}, fmt.Errorf("q.GetCustomerStatsForUpdate: %w", err)
	}

	return mapDBCustomerStatToDomain(s)
}

func (r *customerStatsRepository) UpdateStats(ctx context.Context, stats domain.CustomerStats) error {
	if stats.OrdersCount < 0 || stats.TotalSpent.Amount.IsNegative() {
		return domain.ValidationErrorf("statistics must not be negative")
	}

	cmdTag, err := r.q.UpdateCustomerStats(ctx, db.UpdateCustomerStatsParams{
		CustomerID:       stats.CustomerID,
		OrdersCount:      int32(stats.OrdersCount),
		TotalSpentAmount: stats.TotalSpent.Round().Amount,
		LastOrderDate:    stats.LastOrderDate,
		VipStatus:        string(stats.VIPStatus),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateCustomerStats: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateCustomerStats: customer %s: %w", stats.CustomerID, domain.ErrNotFound)
	}

	return nil
}

func (r *customerStatsRepository) FindDrift(ctx context.Context) ([]domain.StatsDrift, error) {
	rows, err := r.q.FindCustomerStatsDrift(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.FindCustomerStatsDrift: %w", err)
	}

	drifts := make([]domain.StatsDrift, 0, len(rows))
	for _, row := range rows {
		drifts = append(drifts, domain.StatsDrift{
			CustomerID:          row.CustomerID,
			OrdersCount:         int(row.OrdersCount),
			TotalSpent:          row.TotalSpentAmount,
			ExpectedOrdersCount: int(row.ExpectedOrdersCount),
			ExpectedTotalSpent:  row.ExpectedTotalSpent,
		})
	}

	return drifts, nil
}

func mapDBCustomerStatToDomain(s db.CustomerStat) (domain.CustomerStats, error) {
	parsedCurrency, err := currency.ParseISO(s.TotalSpentCurrency)
	if err != nil {
		return domain.CustomerStats{}, fmt.Errorf("currency[%s] is not valid: %w", s.TotalSpentCurrency, err)
	}

	vipStatus, err := domain.ToVIPStatus(s.VipStatus)
	if err != nil {
		return domain.CustomerStats{}, fmt.Errorf("domain.ToVIPStatus[%s]: %w", s.VipStatus, err)
	}

	return domain.CustomerStats{
		CustomerID:    s.CustomerID,
		OrdersCount:   int(s.OrdersCount),
		TotalSpent:    domain.Money{Amount: s.TotalSpentAmount, Currency: parsedCurrency},
		LastOrderDate: s.LastOrderDate,
		VIPStatus:     vipStatus,
		Note:          s.Note,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}
