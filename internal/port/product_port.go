package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	// GetProducts skips ids that do not exist.
	GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)
	// LockProducts takes shared row locks and returns the ids that still exist.
	LockProducts(ctx context.Context, productIDs []uuid.UUID) ([]uuid.UUID, error)

	InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	SetStock(ctx context.Context, productID uuid.UUID, stock int) error
	DeductStock(ctx context.Context, productID uuid.UUID, quantity int) (domain.StockDeduction, error)
}
