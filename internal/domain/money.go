package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MoneyScale is the number of fractional digits kept for persisted amounts.
const MoneyScale = 2

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func ZeroMoney(cur currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: cur}
}

// Mul returns the price of quantity units.
func (m Money) Mul(quantity int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: m.Currency,
	}
}

// Add sums two amounts, the receiver's currency is kept.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// SubFloor subtracts other and clamps the result at zero.
func (m Money) SubFloor(other Money) Money {
	amount := m.Amount.Sub(other.Amount)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return Money{Amount: amount, Currency: m.Currency}
}

func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(MoneyScale), Currency: m.Currency}
}

func (m Money) SameCurrency(other Money) bool {
	return m.Currency.String() == other.Currency.String()
}

func (m Money) Equal(other Money) bool {
	return m.SameCurrency(other) && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Amount.StringFixed(MoneyScale)
}
