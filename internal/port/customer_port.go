package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"golang.org/x/text/currency"
)

// CustomerRepository is the identity collaborator projection.
type CustomerRepository interface {
	GetProfile(ctx context.Context, customerID uuid.UUID) (domain.CustomerProfile, error)
	InsertCustomer(ctx context.Context, profile domain.CustomerProfile) (uuid.UUID, error)
}

type CustomerStatsRepository interface {
	// EnsureStats creates the statistics row unless it already exists.
	EnsureStats(ctx context.Context, customerID uuid.UUID, cur currency.Unit) error
	GetStats(ctx context.Context, customerID uuid.UUID) (domain.CustomerStats, error)
	GetStatsForUpdate(ctx context.Context, customerID uuid.UUID) (domain.CustomerStats, error)
	UpdateStats(ctx context.Context, stats domain.CustomerStats) error

	FindDrift(ctx context.Context) ([]domain.StatsDrift, error)
}
