package queries

import (
	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/pkg/errs"
	"donedelivery/internal/pkg/guard"
)

// GetParcelsByStatusQuery requests all parcels currently in a given
// lifecycle status, optionally narrowed to a single driver.
type GetParcelsByStatusQuery struct {
	guard guard.ConstructorGuard

	status   parcel.Status
	driverID *kernel.UUID
}

// NewGetParcelsByStatusQuery creates a query for parcels in the given
// status. driverID may be nil to list parcels across all drivers.
func NewGetParcelsByStatusQuery(status parcel.Status, driverID *kernel.UUID) (GetParcelsByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetParcelsByStatusQuery{}, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetParcelsByStatusQuery{}, errs.NewValueIsInvalidErrorWithCause("driverID", err)
		}
	}

	return GetParcelsByStatusQuery{
		guard:    guard.NewConstructorGuard(),
		status:   status,
		driverID: driverID,
	}, nil
}

// Validate checks that the query was created through the constructor.
func (q GetParcelsByStatusQuery) Validate() error {
	return q.guard.Validate(errs.NewValueIsRequiredError("GetParcelsByStatusQuery must be created via NewGetParcelsByStatusQuery"))
}

// Status returns the lifecycle status being queried.
func (q GetParcelsByStatusQuery) Status() parcel.Status {
	return q.status
}

// DriverID returns the optional driver filter, or nil.
func (q GetParcelsByStatusQuery) DriverID() *kernel.UUID {
	return q.driverID
}
