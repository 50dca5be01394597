package kernel

import (
	"fmt"
	"math"

	"donedelivery/internal/pkg/errs"
)

// DefaultCurrency is the currency used when callers do not specify one.
const DefaultCurrency = "ZAR"

// ErrMoneyIsNotConstructed indicates that a Money value was not created
// through NewMoney or NewMoneyFromAmount.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or NewMoneyFromAmount",
)

// Money is a value object representing a monetary amount in a single
// currency. Amounts are stored in cents to avoid floating point drift;
// construction from a decimal amount rounds half away from zero to two
// decimal places.
//
// The zero value is invalid and must be constructed through NewMoney or
// NewMoneyFromAmount. Money is immutable and safe for concurrent use.
//
// Example:
//
//	price, err := kernel.NewMoneyFromAmount(400.0, "ZAR")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(price.String()) // "R400.00"
type Money struct {
	cents         int64
	currency      string
	isConstructed bool
}

// NewMoney creates a Money value from an amount expressed in cents.
// Negative amounts are rejected; an empty currency falls back to
// DefaultCurrency.
func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"cents",
			fmt.Errorf("%d is negative", cents),
		)
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	return Money{
		cents:         cents,
		currency:      currency,
		isConstructed: true,
	}, nil
}

// NewMoneyFromAmount creates a Money value from a decimal amount, rounding
// to two decimal places. Negative and non-finite amounts are rejected.
func NewMoneyFromAmount(amount float64, currency string) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%v is not a finite number", amount),
		)
	}
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%v is negative", amount),
		)
	}

	return NewMoney(int64(math.Round(amount*100)), currency)
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Amount returns the amount as a decimal number of currency units.
func (m Money) Amount() float64 {
	return float64(m.cents) / 100
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// String renders the amount the way the business displays it, e.g. "R400.00"
// for ZAR. Other currencies are rendered with their code as prefix.
func (m Money) String() string {
	prefix := m.currency + " "
	if m.currency == DefaultCurrency {
		prefix = "R"
	}
	return fmt.Sprintf("%s%d.%02d", prefix, m.cents/100, m.cents%100)
}

// Validate checks that the Money value was properly constructed.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
