package kernel

import (
	"fmt"

	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when validating a Money that was not built by a constructor.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney, MoneyFromInt or ParseMoney")

// MoneyScale is the number of decimal places a Money may carry. Stores persist amounts
// at this scale, so anything finer would be rounded on the way in.
const MoneyScale = 2

// Money is a non-negative currency amount. Line totals and order totals are Money,
// computed from catalog prices and never supplied by clients.
//
// Money wraps shopspring/decimal so that sums of prices stay exact.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// NewMoney validates that amount is not negative and has at most MoneyScale decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return Money{}, errs.NewValueIsOutOfRangeError("money decimal places", amount.String(), 0, MoneyScale)
	}
	return Money{amount: amount, isConstructed: true}, nil
}

// MoneyFromInt builds a whole amount.
func MoneyFromInt(amount int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount))
}

// ParseMoney parses a decimal string such as "2" or "4.50".
func ParseMoney(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(amount)
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// Times returns m multiplied by a non-negative count.
func (m Money) Times(count int) Money {
	if count < 0 {
		count = 0
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(count))), isConstructed: true}
}

// IsEqual compares amounts numerically, so 4 and 4.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount without trailing zeros ("4", "4.5").
func (m Money) String() string {
	return m.amount.String()
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
