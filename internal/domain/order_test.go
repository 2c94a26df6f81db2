package domain_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestOrder_AddItem(t *testing.T) {
	order := domain.NewOrder(nil, domain.ContactSnapshot{Name: "guest"}, currency.USD)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "0.00", order.Total.String())

	require.NoError(t, order.AddItem(domain.OrderItem{ProductID: uuid.New(), Quantity: 3, UnitPrice: usd("5.00")}))
	require.NoError(t, order.AddItem(domain.OrderItem{ProductID: uuid.New(), Quantity: 2, UnitPrice: usd("7.00")}))

	assert.Equal(t, "29.00", order.Total.String())
	assert.True(t, order.TotalConsistent())
	assert.Len(t, order.Items, 2)
}

func TestOrder_AddItemRejected(t *testing.T) {
	tests := []struct {
		name      string
		item      domain.OrderItem
		wantError string
	}{
		{
			name:      "zero quantity: fail",
			item:      domain.OrderItem{Quantity: 0, UnitPrice: usd("1.00")},
			wantError: "validation failed: quantity must be positive, got 0",
		},
		{
			name:      "quantity overflows int32: fail",
			item:      domain.OrderItem{Quantity: 1<<32 + 1, UnitPrice: usd("1.00")},
			wantError: "validation failed: quantity 4294967297 exceeds 2147483647",
		},
		{
			name: "foreign currency: fail",
			item: domain.OrderItem{
				Quantity:  1,
				UnitPrice: domain.Money{Amount: decimal.NewFromInt(1), Currency: currency.EUR},
			},
			wantError: "validation failed: item currency EUR differs from order currency USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := domain.NewOrder(nil, domain.ContactSnapshot{}, currency.USD)

			err := order.AddItem(tt.item)
			require.EqualError(t, err, tt.wantError)
			assert.Empty(t, order.Items)
			assert.True(t, order.TotalConsistent())
		})
	}
}

func TestOrder_TotalInvariantRandom(t *testing.T) {
	for i := 0; i < 50; i++ {
		order := domain.NewOrder(nil, domain.ContactSnapshot{}, currency.USD)

		expected := decimal.Zero
		for j := 0; j < gofakeit.Number(1, 8); j++ {
			price := decimal.NewFromFloat(gofakeit.Price(0.01, 500)).Round(domain.MoneyScale)
			qty := gofakeit.Number(1, 100)
			expected = expected.Add(price.Mul(decimal.NewFromInt(int64(qty))))

			require.NoError(t, order.AddItem(domain.OrderItem{
				ProductID: uuid.New(),
				Quantity:  qty,
				UnitPrice: domain.Money{Amount: price, Currency: currency.USD},
			}))
			require.True(t, order.TotalConsistent())
		}

		assert.True(t, expected.Equal(order.Total.Amount), "want %s, got %s", expected, order.Total)
	}
}

func TestContactSnapshot_FillFrom(t *testing.T) {
	profile := domain.CustomerProfile{
		Name:    "Profile Name",
		Phone:   "+100",
		Email:   "profile@example.com",
		City:    "Cairo",
		Address: "Street 1",
	}

	got := domain.ContactSnapshot{Name: "Explicit", City: ""}.FillFrom(profile)

	assert.Equal(t, domain.ContactSnapshot{
		Name:    "Explicit",
		Phone:   "+100",
		Email:   "profile@example.com",
		City:    "Cairo",
		Address: "Street 1",
	}, got)
}

func TestNewAuditRow(t *testing.T) {
	orderID := uuid.New()
	order := domain.Order{
		ID:        orderID,
		Status:    domain.OrderStatusPending,
		Total:     usd("29.00"),
		CreatedAt: time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
		Contact: domain.ContactSnapshot{
			Name:    "Ann",
			Phone:   "123",
			Email:   "ann@example.com",
			City:    "Giza",
			Address: "Main st",
		},
		Items: []domain.OrderItem{
			{ProductName: "Pen", Quantity: 3, UnitPrice: usd("5")},
			{ProductName: "Book", Quantity: 2, UnitPrice: usd("7")},
		},
	}

	row := domain.NewAuditRow(order)

	assert.Equal(t, []string{
		orderID.String(),
		"Ann",
		"123",
		"ann@example.com",
		"Giza",
		"Main st",
		"Pen x3 @ 5.00 | Book x2 @ 7.00",
		"29.00",
		"2024-03-01 10:20:30",
	}, row.Values())
	assert.Len(t, domain.AuditHeader(), len(row.Values()))
}
