package parcel

import (
	"fmt"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/pkg/errs"
)

// Pricing is a value object freezing the price of a shipment at creation
// time: the quoted distance, the per-kilometer rate in effect, and the
// resulting total. Later changes to the configured rate never reprice an
// existing parcel.
type Pricing struct {
	distanceKm float64
	ratePerKm  float64
	total      kernel.Money
}

// NewPricing computes and freezes the price for a shipment:
// total = distanceKm * ratePerKm, rounded to two decimal places.
// Negative distance or rate is rejected.
func NewPricing(distanceKm, ratePerKm float64, currency string) (Pricing, error) {
	if distanceKm < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"distance",
			fmt.Errorf("%v is negative", distanceKm),
		)
	}
	if ratePerKm < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"ratePerKm",
			fmt.Errorf("%v is negative", ratePerKm),
		)
	}

	total, err := kernel.NewMoneyFromAmount(distanceKm*ratePerKm, currency)
	if err != nil {
		return Pricing{}, err
	}

	return Pricing{
		distanceKm: distanceKm,
		ratePerKm:  ratePerKm,
		total:      total,
	}, nil
}

// RestorePricing reconstructs a frozen pricing snapshot from persistence
// without recomputing the total.
func RestorePricing(distanceKm, ratePerKm float64, total kernel.Money) (Pricing, error) {
	if err := total.Validate(); err != nil {
		return Pricing{}, err
	}
	return Pricing{
		distanceKm: distanceKm,
		ratePerKm:  ratePerKm,
		total:      total,
	}, nil
}

// DistanceKm returns the quoted delivery distance.
func (p Pricing) DistanceKm() float64 {
	return p.distanceKm
}

// RatePerKm returns the per-kilometer rate in effect at creation.
func (p Pricing) RatePerKm() float64 {
	return p.ratePerKm
}

// Total returns the frozen total amount.
func (p Pricing) Total() kernel.Money {
	return p.total
}

// Validate checks that the pricing snapshot carries a constructed total.
func (p Pricing) Validate() error {
	return p.total.Validate()
}
