package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity or stock level the schema can store.
const MaxQuantity = math.MaxInt32

// ValidateQuantity accepts ordered quantities in [1, MaxQuantity].
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return ValidationErrorf("quantity must be positive, got %d", quantity)
	}
	if quantity > MaxQuantity {
		return ValidationErrorf("quantity %d exceeds %d", quantity, MaxQuantity)
	}
	return nil
}

// ValidateStock accepts stock levels in [0, MaxQuantity].
func ValidateStock(stock int) error {
	if stock < 0 {
		return ValidationErrorf("stock must not be negative, got %d", stock)
	}
	if stock > MaxQuantity {
		return ValidationErrorf("stock %d exceeds %d", stock, MaxQuantity)
	}
	return nil
}

type Product struct {
	ID        uuid.UUID
	SKU       string
	Name      string
	BasePrice Money
	Stock     int
	Active    bool
	Tiers     []PriceTier

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceTier overrides the base price for quantities in [MinQty, MaxQty].
// A nil MaxQty means the range is unbounded.
type PriceTier struct {
	ID     uuid.UUID
	MinQty int
	MaxQty *int
	Price  decimal.Decimal
}

func (t PriceTier) Matches(quantity int) bool {
	if quantity < t.MinQty {
		return false
	}
	return t.MaxQty == nil || quantity <= *t.MaxQty
}

// Pricer is implemented by everything that can be ordered.
type Pricer interface {
	UnitPrice(quantity int) (Money, error)
}

var _ Pricer = Product{}

func (p Product) UnitPrice(quantity int) (Money, error) {
	return ResolveUnitPrice(p.BasePrice, p.Tiers, quantity)
}

// StockDeduction is the outcome of a single stock ledger decrement.
type StockDeduction struct {
	ProductID uuid.UUID
	Requested int
	Previous  int
	New       int
}

// Clamped reports whether the ledger had to floor the stock at zero.
func (d StockDeduction) Clamped() bool {
	return d.Previous < d.Requested
}
