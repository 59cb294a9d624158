package kernel

import (
	"database/sql/driver"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places kept for all amounts.
const moneyScale = 2

// ErrMoneyIsNegative is returned when constructing a Money from a negative amount.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("amount must not be negative")

// Money is a non-negative monetary amount with two decimal places.
// It wraps shopspring/decimal so that commission and payout arithmetic is
// exact: for any order amount and rate, commission plus net reassembles the
// gross amount without floating-point drift.
//
// Money is an immutable value object. The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoneyFromDecimal creates a Money from a decimal, rounding to two places.
// Returns ErrMoneyIsNegative for negative amounts.
func NewMoneyFromDecimal(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount.Round(moneyScale)}, nil
}

// NewMoneyFromFloat creates a Money from a float amount.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

// NewMoneyFromString parses a Money from its decimal string representation.
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoneyFromDecimal(d)
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
// Fails with ErrMoneyIsNegative if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: result}, nil
}

// MulRate multiplies the amount by a fractional rate (e.g. a 0.15
// commission rate), rounding the result to two decimal places.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(moneyScale)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the fixed two-decimal representation, e.g. "850.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// Value implements driver.Valuer for database persistence.
func (m Money) Value() (driver.Value, error) {
	return m.amount.Round(moneyScale).Value()
}

// Scan implements sql.Scanner for database retrieval.
func (m *Money) Scan(value any) error {
	if err := m.amount.Scan(value); err != nil {
		return err
	}
	m.amount = m.amount.Round(moneyScale)
	return nil
}
