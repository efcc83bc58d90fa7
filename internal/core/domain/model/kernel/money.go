package kernel

import (
	"fmt"

	"pharmacy/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not initialized
// through one of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney, MoneyFromString, or ZeroMoney")

// Money is a value object for non-negative decimal amounts with two decimal
// places of precision. It is used for medicine prices, order item snapshots,
// and order totals. Arithmetic goes through shopspring/decimal, never through
// floating point.
//
// The zero value of Money is invalid; construct it through NewMoney,
// MoneyFromString, or ZeroMoney.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewMoney creates a Money value from a decimal amount.
// The amount must not be negative; it is normalized to two decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}

	return Money{
		amount:        amount.Round(2),
		isConstructed: true,
	}, nil
}

// MoneyFromString parses a Money value from its decimal string representation,
// for example "50.00". Used when reconstructing values from persistence or
// parsing request payloads.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a valid Money of amount zero, useful as the seed for
// summing line totals.
func ZeroMoney() Money {
	return Money{
		amount:        decimal.Zero,
		isConstructed: true,
	}
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount with exactly two decimal places, e.g. "50.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MulQuantity multiplies the amount by a line quantity, producing a line total.
func (m Money) MulQuantity(quantity int) Money {
	return Money{
		amount:        m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		isConstructed: m.isConstructed,
	}
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{
		amount:        m.amount.Add(other.amount),
		isConstructed: m.isConstructed && other.isConstructed,
	}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Validate checks that the Money value was constructed through one of the
// factory functions and that its amount is not negative.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	if m.amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", m.amount.String()),
		)
	}
	return nil
}
