package domain

import (
	"bytes"

	"github.com/google/uuid"
)

// ResolveUnitPrice picks the unit price for quantity.
//
// Among the tiers whose range contains quantity, the one with the greatest
// MinQty wins. Tiers sharing the same MinQty are ordered by the narrowest
// range (smallest MaxQty, unbounded last), then by the lowest price, then by
// tier ID, so the result never depends on the order of tiers. Without a
// matching tier the base price applies.
func ResolveUnitPrice(base Money, tiers []PriceTier, quantity int) (Money, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return Money{}, err
	}

	var (
		best  PriceTier
		found bool
	)

	for _, tier := range tiers {
		if !tier.Matches(quantity) {
			continue
		}
		if !found || preferTier(tier, best) {
			best = tier
			found = true
		}
	}

	if !found {
		return base, nil
	}

	return Money{Amount: best.Price, Currency: base.Currency}, nil
}

// preferTier reports whether a ranks before b.
func preferTier(a, b PriceTier) bool {
	if a.MinQty != b.MinQty {
		return a.MinQty > b.MinQty
	}

	switch {
	case a.MaxQty != nil && b.MaxQty == nil:
		return true
	case a.MaxQty == nil && b.MaxQty != nil:
		return false
	case a.MaxQty != nil && b.MaxQty != nil && *a.MaxQty != *b.MaxQty:
		return *a.MaxQty < *b.MaxQty
	}

	if !a.Price.Equal(b.Price) {
		return a.Price.LessThan(b.Price)
	}

	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

// PriceQuote answers the price-for-quantity query.
type PriceQuote struct {
	ProductID  uuid.UUID
	Quantity   int
	UnitPrice  Money
	TotalPrice Money
}

func QuotePrice(p Product, quantity int) (PriceQuote, error) {
	unitPrice, err := p.UnitPrice(quantity)
	if err != nil {
		return PriceQuote{}, err
	}

	return PriceQuote{
		ProductID:  p.ID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(quantity),
	}, nil
}
