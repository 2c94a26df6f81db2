package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func randomProduct() domain.Product {
	return domain.Product{
		SKU:       gofakeit.UUID(),
		Name:      gofakeit.ProductName(),
		BasePrice: domain.Money{Amount: randomPrice(), Currency: currency.USD},
		Stock:     gofakeit.Number(0, 1000),
		Active:    true,
	}
}

func randomTieredProduct() domain.Product {
	p := randomProduct()
	p.BasePrice = domain.Money{Amount: decimal.RequireFromString("12.00"), Currency: currency.USD}
	p.Tiers = []domain.PriceTier{
		{MinQty: 50, Price: decimal.RequireFromString("6.00")},
		{MinQty: 10, MaxQty: lo.ToPtr(49), Price: decimal.RequireFromString("8.00")},
		{MinQty: 1, MaxQty: lo.ToPtr(9), Price: decimal.RequireFromString("10.00")},
	}
	return p
}

func randomProfile() domain.CustomerProfile {
	return domain.CustomerProfile{
		Name:    gofakeit.Name(),
		Phone:   gofakeit.Phone(),
		Email:   gofakeit.Email(),
		City:    gofakeit.City(),
		Address: gofakeit.Street(),
	}
}

func randomContact() domain.ContactSnapshot {
	return domain.ContactSnapshot{
		Name:    gofakeit.Name(),
		Phone:   gofakeit.Phone(),
		Email:   gofakeit.Email(),
		City:    gofakeit.City(),
		Address: gofakeit.Street(),
	}
}

func randomPrice() decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(domain.MoneyScale)
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func compareOptions() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
		cmpopts.EquateEmpty(),
	}
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	opts := append(compareOptions(),
		cmpopts.IgnoreFields(domain.Product{}, "ID", "CreatedAt", "UpdatedAt"),
		cmpopts.IgnoreFields(domain.PriceTier{}, "ID"),
	)

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotEqual(t, uuid.Nil, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
	for _, tier := range actual.Tiers {
		assert.NotEqual(t, uuid.Nil, tier.ID)
	}
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := append(compareOptions(),
		cmpopts.IgnoreFields(domain.OrderItem{}, "ID", "CreatedAt"),
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt", "UpdatedAt", "ID", "Version"),
	)

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
	assert.NotEqual(t, uuid.Nil, actual.ID)
}
