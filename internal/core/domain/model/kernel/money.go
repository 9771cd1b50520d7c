package kernel

import (
	"fmt"
	"math"

	"mealdash/internal/pkg/errs"
	"mealdash/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when validating a Money value that was
// not created via one of the constructors.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoneyFromCents or NewMoneyFromFloat")

// Money is a non-negative currency amount stored as integer cents. Keeping
// cents rather than floats makes cart and order totals exact: two items at
// $8.99 plus a $3.99 fee is 2197 cents, never 21.969999.
//
// Money is immutable; arithmetic methods return new values.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromFloat(8.99)
//	total := price.MulQty(2).Add(deliveryFee)
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoneyFromCents creates a Money value from a cent amount.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}

	return Money{
		cents: cents,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewMoneyFromFloat creates a Money value from a decimal amount such as 8.99,
// rounding to the nearest cent. Used at ingestion boundaries where external
// payloads carry decimal prices.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%v is not a valid amount", amount))
	}

	return NewMoneyFromCents(int64(math.Round(amount * 100)))
}

// MustMoneyFromCents is a convenience for literals in tests and composition
// code where the amount is known to be valid. Panics on a negative amount.
func MustMoneyFromCents(cents int64) Money {
	m, err := NewMoneyFromCents(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate reports whether the value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the decimal amount, for presentation only.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents, guard: guard.NewConstructorGuard()}
}

// MulQty returns the amount multiplied by a line quantity.
func (m Money) MulQty(qty int) Money {
	return Money{cents: m.cents * int64(qty), guard: guard.NewConstructorGuard()}
}

// Percent returns the given percentage of the amount, rounded to the nearest
// cent. Used for tax computation.
func (m Money) Percent(pct float64) Money {
	return Money{
		cents: int64(math.Round(float64(m.cents) * pct / 100)),
		guard: guard.NewConstructorGuard(),
	}
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount as a dollar string, e.g. "$21.97".
func (m Money) String() string {
	return fmt.Sprintf("$%d.%02d", m.cents/100, m.cents%100)
}
