package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// CustomerProfile is what the identity collaborator knows about a customer.
type CustomerProfile struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Email     string
	City      string
	Address   string
	Wholesale bool
}

type VIPStatus string

const (
	VIPStatusNormal    VIPStatus = "normal"
	VIPStatusVIP       VIPStatus = "vip"
	VIPStatusWholesale VIPStatus = "wholesale"
)

func ToVIPStatus(s string) (VIPStatus, error) {
	switch status := VIPStatus(s); status {
	case VIPStatusNormal, VIPStatusVIP, VIPStatusWholesale:
		return status, nil
	}
	return "", ValidationErrorf("invalid vip status %q", s)
}

// CustomerStats is the denormalized per-customer rollup of counted orders.
type CustomerStats struct {
	CustomerID    uuid.UUID
	OrdersCount   int
	TotalSpent    Money
	LastOrderDate *time.Time
	VIPStatus     VIPStatus
	Note          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCustomerStats(customerID uuid.UUID, cur currency.Unit) CustomerStats {
	return CustomerStats{
		CustomerID: customerID,
		TotalSpent: ZeroMoney(cur),
		VIPStatus:  VIPStatusNormal,
	}
}

// CountOrder adds an order to the rollup.
func (s CustomerStats) CountOrder(total Money, createdAt time.Time) CustomerStats {
	s.OrdersCount++
	s.TotalSpent = s.TotalSpent.Add(total).Round()
	at := createdAt
	s.LastOrderDate = &at
	return s
}

// ReverseOrder removes a previously counted order. Both counters are floored
// at zero. LastOrderDate is left untouched.
func (s CustomerStats) ReverseOrder(total Money) CustomerStats {
	if s.OrdersCount > 0 {
		s.OrdersCount--
	}
	s.TotalSpent = s.TotalSpent.SubFloor(total).Round()
	return s
}

// VIPPolicy classifies customers by lifetime spend. A zero threshold
// disables promotion. Wholesale is sticky.
type VIPPolicy struct {
	Threshold decimal.Decimal
}

func (p VIPPolicy) Classify(s CustomerStats) VIPStatus {
	if s.VIPStatus == VIPStatusWholesale {
		return VIPStatusWholesale
	}
	if p.Threshold.IsPositive() && s.TotalSpent.Amount.GreaterThanOrEqual(p.Threshold) {
		return VIPStatusVIP
	}
	return VIPStatusNormal
}

// StatsDrift is a statistics row that disagrees with the counted orders.
type StatsDrift struct {
	CustomerID          uuid.UUID
	OrdersCount         int
	TotalSpent          decimal.Decimal
	ExpectedOrdersCount int
	ExpectedTotalSpent  decimal.Decimal
}
