package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// ContactSnapshot is captured when the order is created and never follows
// later edits of the customer profile.
type ContactSnapshot struct {
	Name    string
	Phone   string
	Email   string
	City    string
	Address string
}

// FillFrom copies profile values into the fields the caller left empty.
func (c ContactSnapshot) FillFrom(p CustomerProfile) ContactSnapshot {
	fill := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}

	return ContactSnapshot{
		Name:    fill(c.Name, p.Name),
		Phone:   fill(c.Phone, p.Phone),
		Email:   fill(c.Email, p.Email),
		City:    fill(c.City, p.City),
		Address: fill(c.Address, p.Address),
	}
}

type Order struct {
	ID         uuid.UUID
	CustomerID *uuid.UUID
	Status     OrderStatus
	Total      Money
	Contact    ContactSnapshot
	Items      []OrderItem

	// StatsCounted is set while the order contributes to customer statistics.
	StatsCounted bool
	Version      int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a line item. UnitPrice is the price snapshot taken at creation.
type OrderItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   Money

	CreatedAt time.Time
}

func (i OrderItem) LineTotal() Money {
	return i.UnitPrice.Mul(i.Quantity)
}

// NewOrder starts a pending order without items and a zero total.
func NewOrder(customerID *uuid.UUID, contact ContactSnapshot, cur currency.Unit) Order {
	return Order{
		CustomerID: customerID,
		Status:     OrderStatusPending,
		Total:      ZeroMoney(cur),
		Contact:    contact,
	}
}

// AddItem appends a line item and recomputes the total.
func (o *Order) AddItem(item OrderItem) error {
	if err := ValidateQuantity(item.Quantity); err != nil {
		return err
	}
	if !item.UnitPrice.SameCurrency(o.Total) {
		return ValidationErrorf("item currency %s differs from order currency %s",
			item.UnitPrice.Currency, o.Total.Currency)
	}

	o.Items = append(o.Items, item)
	o.Total = o.ComputeTotal()

	return nil
}

// ComputeTotal sums unit price times quantity over the items.
func (o Order) ComputeTotal() Money {
	total := ZeroMoney(o.Total.Currency)
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total.Round()
}

// TotalConsistent reports whether Total equals the sum of the items.
func (o Order) TotalConsistent() bool {
	return o.Total.Equal(o.ComputeTotal())
}
