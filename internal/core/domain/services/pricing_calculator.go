package services

import (
	"fmt"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/pkg/errs"
)

// PricingCalculator is a domain service that quotes shipment prices from
// the configured per-kilometer rate. The rate is captured at construction;
// a parcel created from a quote freezes that price for its lifetime, so
// later rate changes never reprice existing parcels.
//
// Example usage:
//
//	calculator, _ := services.NewPricingCalculator(80, "ZAR")
//	pricing, err := calculator.Price(5)
//	if err != nil {
//	    // negative distance
//	}
//	// pricing.Total().Amount() == 400.00
type PricingCalculator struct {
	ratePerKm float64
	currency  string
}

// NewPricingCalculator creates a calculator for the given rate and currency.
// The rate must be non-negative; an empty currency falls back to
// kernel.DefaultCurrency.
func NewPricingCalculator(ratePerKm float64, currency string) (PricingCalculator, error) {
	if ratePerKm < 0 {
		return PricingCalculator{}, errs.NewValueIsInvalidErrorWithCause(
			"ratePerKm",
			fmt.Errorf("%v is negative", ratePerKm),
		)
	}
	if currency == "" {
		currency = kernel.DefaultCurrency
	}

	return PricingCalculator{
		ratePerKm: ratePerKm,
		currency:  currency,
	}, nil
}

// RatePerKm returns the configured per-kilometer rate.
func (c PricingCalculator) RatePerKm() float64 {
	return c.ratePerKm
}

// Currency returns the configured currency code.
func (c PricingCalculator) Currency() string {
	return c.currency
}

// Price quotes a shipment over the given distance: distance * rate, rounded
// to two decimal places. Negative distances are rejected.
func (c PricingCalculator) Price(distanceKm float64) (parcel.Pricing, error) {
	return parcel.NewPricing(distanceKm, c.ratePerKm, c.currency)
}
