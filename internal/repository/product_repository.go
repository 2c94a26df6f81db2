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
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProduct: product %s: %w", productID, domain.ErrNotFound)
		}
		return p, fmt.Errorf("q.GetProduct: %w", err)
	}

	dbTiers, err := r.q.GetTiersByProducts(ctx, []uuid.UUID{productID})
	if err != nil {
		return p, fmt.Errorf("q.GetTiersByProducts: %w", err)
	}

	p, err = mapDBProductToDomain(dbProduct, dbTiers)
	if err != nil {
		return p, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return p, nil
}

func (r *productRepository) GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	ids := lo.Uniq(productIDs)

	dbProducts, err := r.q.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.GetProducts: %w", err)
	}

	dbTiers, err := r.q.GetTiersByProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.GetTiersByProducts: %w", err)
	}

	tiersByProduct := lo.GroupBy(dbTiers, func(t db.QuantityPriceTier) uuid.UUID {
		return t.ProductID
	})

	products := make([]domain.Product, 0, len(dbProducts))
	for _, dbProduct := range dbProducts {
		p, err := mapDBProductToDomain(dbProduct, tiersByProduct[dbProduct.ID])
		if err != nil {
			return nil, fmt.Errorf("mapDBProductToDomain: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

func (r *productRepository) LockProducts(ctx context.Context, productIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	ids, err := r.q.LockProducts(ctx, lo.Uniq(productIDs))
	if err != nil {
		return nil, fmt.Errorf("q.LockProducts: %w", err)
	}

	return ids, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if product.SKU == "" {
		return uuid.Nil, domain.ValidationErrorf("sku is empty")
	}
	if err := domain.ValidateStock(product.Stock); err != nil {
		return uuid.Nil, err
	}
	for _, tier := range product.Tiers {
		if err := domain.ValidateQuantity(tier.MinQty); err != nil {
			return uuid.Nil, fmt.Errorf("tier min qty: %w", err)
		}
		if tier.MaxQty != nil {
			if err := domain.ValidateQuantity(*tier.MaxQty); err != nil {
				return uuid.Nil, fmt.Errorf("tier max qty: %w", err)
			}
		}
	}

	return withTx(ctx, r.dbtx, func(q *db.Queries) (uuid.UUID, error) {
		productID, err := q.InsertProduct(ctx, db.InsertProductParams{
			Sku:             product.SKU,
			Name:            product.Name,
			BasePriceAmount: product.BasePrice.Amount,
			PriceCurrency:   product.BasePrice.Currency.String(),
			Stock:           int32(product.Stock),
			Active:          product.Active,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertProduct: %w", err)
		}

		// TODO: batch tier inserts with CopyFrom once catalogs carry more than a handful of tiers
		for _, tier := range product.Tiers {
			if _, err := q.InsertTier(ctx, db.InsertTierParams{
				ProductID:   productID,
				MinQty:      int32(tier.MinQty),
				MaxQty:      intPtrToInt32Ptr(tier.MaxQty),
				PriceAmount: tier.Price,
			}); err != nil {
				return uuid.Nil, fmt.Errorf("q.InsertTier: %w", err)
			}
		}

		return productID, nil
	})
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	cmdTag, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("q.DeleteProduct: %w", mapConstraintError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteProduct: product %s: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func (r *productRepository) SetStock(ctx context.Context, productID uuid.UUID, stock int) error {
	if err := domain.ValidateStock(stock); err != nil {
		return err
	}

	cmdTag, err := r.q.SetProductStock(ctx, db.SetProductStockParams{
		ID:    productID,
		Stock: int32(stock),
	})
	if err != nil {
		return fmt.Errorf("q.SetProductStock: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.SetProductStock: product %s: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func (r *productRepository) DeductStock(ctx context.Context, productID uuid.UUID, quantity int) (domain.StockDeduction, error) {
	d := domain.StockDeduction{ProductID: productID, Requested: quantity}

	if err := domain.ValidateQuantity(quantity); err != nil {
		return d, err
	}

	row, err := r.q.DeductProductStock(ctx, db.DeductProductStockParams{
		ID:       productID,
		Quantity: int32(quantity),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return d, fmt.Errorf("q.DeductProductStock: product %s: %w", productID, domain.ErrNotFound)
		}
		return d, fmt.Errorf("q.DeductProductStock: %w", err)
	}

	d.Previous = int(row.PreviousStock)
	d.New = int(row.NewStock)

	return d, nil
}

func mapDBProductToDomain(p db.Product, tiers []db.QuantityPriceTier) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(p.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", p.PriceCurrency, err)
	}

	return domain.Product{
		ID:        p.ID,
		SKU:       p.Sku,
		Name:      p.Name,
		BasePrice: domain.Money{Amount: p.BasePriceAmount, Currency: parsedCurrency},
		Stock:     int(p.Stock),
		Active:    p.Active,
		Tiers:     lo.Map(tiers, mapDBTierToDomain),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func mapDBTierToDomain(t db.QuantityPriceTier, _ int) domain.PriceTier {
	return domain.PriceTier{
		ID:     t.ID,
		MinQty: int(t.MinQty),
		MaxQty: int32PtrToIntPtr(t.MaxQty),
		Price:  t.PriceAmount,
	}
}

func intPtrToInt32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	return lo.ToPtr(int32(*v))
}

func int32PtrToIntPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	return lo.ToPtr(int(*v))
}
