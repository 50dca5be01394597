package parcel

import (
	"errors"
	"fmt"

	"donedelivery/internal/pkg/errs"
)

// PackageInfo is a value object describing the physical package being
// shipped: what it is, how heavy, how valuable, and how far it travels.
type PackageInfo struct {
	description string
	weightKg    float64
	value       float64
	distanceKm  float64
}

// NewPackageInfo creates a package description. Weight must be positive;
// declared value and distance must be non-negative.
func NewPackageInfo(description string, weightKg, value, distanceKm float64) (PackageInfo, error) {
	var err error
	if description == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("description"))
	}
	if weightKg <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%v is not greater than 0", weightKg),
		))
	}
	if value < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"value",
			fmt.Errorf("%v is negative", value),
		))
	}
	if distanceKm < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"distance",
			fmt.Errorf("%v is negative", distanceKm),
		))
	}
	if err != nil {
		return PackageInfo{}, err
	}

	return PackageInfo{
		description: description,
		weightKg:    weightKg,
		value:       value,
		distanceKm:  distanceKm,
	}, nil
}

// Description returns what is being shipped.
func (p PackageInfo) Description() string {
	return p.description
}

// WeightKg returns the package weight in kilograms.
func (p PackageInfo) WeightKg() float64 {
	return p.weightKg
}

// Value returns the declared value of the package contents.
func (p PackageInfo) Value() float64 {
	return p.value
}

// DistanceKm returns the estimated delivery distance in kilometers.
func (p PackageInfo) DistanceKm() float64 {
	return p.distanceKm
}

// Validate checks the package invariants.
func (p PackageInfo) Validate() error {
	if p.description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	if p.weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%v is not greater than 0", p.weightKg),
		)
	}
	return nil
}
