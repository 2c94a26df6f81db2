package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestCustomerStats_CountAndReverse(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	stats := domain.NewCustomerStats(uuid.New(), currency.USD)
	stats = stats.CountOrder(usd("29.00"), createdAt)
	stats = stats.CountOrder(usd("10.50"), createdAt.Add(time.Hour))

	assert.Equal(t, 2, stats.OrdersCount)
	assert.Equal(t, "39.50", stats.TotalSpent.String())
	assert.Equal(t, createdAt.Add(time.Hour), *stats.LastOrderDate)

	stats = stats.ReverseOrder(usd("29.00"))
	assert.Equal(t, 1, stats.OrdersCount)
	assert.Equal(t, "10.50", stats.TotalSpent.String())
	assert.Equal(t, createdAt.Add(time.Hour), *stats.LastOrderDate)
}

func TestCustomerStats_ReverseClampsAtZero(t *testing.T) {
	stats := domain.NewCustomerStats(uuid.New(), currency.USD)
	stats = stats.CountOrder(usd("5.00"), time.Now())

	stats = stats.ReverseOrder(usd("8.00"))
	assert.Equal(t, 0, stats.OrdersCount)
	assert.Equal(t, "0.00", stats.TotalSpent.String())

	stats = stats.ReverseOrder(usd("1.00"))
	assert.Equal(t, 0, stats.OrdersCount)
	assert.Equal(t, "0.00", stats.TotalSpent.String())
}

func TestVIPPolicy_Classify(t *testing.T) {
	policy := domain.VIPPolicy{Threshold: decimal.RequireFromString("100.00")}

	tests := []struct {
		name    string
		current domain.VIPStatus
		spent   string
		policy  domain.VIPPolicy
		want    domain.VIPStatus
	}{
		{name: "below threshold", current: domain.VIPStatusNormal, spent: "99.99", policy: policy, want: domain.VIPStatusNormal},
		{name: "at threshold", current: domain.VIPStatusNormal, spent: "100.00", policy: policy, want: domain.VIPStatusVIP},
		{name: "vip falls back after reversal", current: domain.VIPStatusVIP, spent: "10.00", policy: policy, want: domain.VIPStatusNormal},
		{name: "wholesale is sticky", current: domain.VIPStatusWholesale, spent: "0.00", policy: policy, want: domain.VIPStatusWholesale},
		{name: "zero threshold disables promotion", current: domain.VIPStatusNormal, spent: "1000000.00", want: domain.VIPStatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := domain.NewCustomerStats(uuid.New(), currency.USD)
			stats.VIPStatus = tt.current
			stats.TotalSpent = usd(tt.spent)

			assert.Equal(t, tt.want, tt.policy.Classify(stats))
		})
	}
}
