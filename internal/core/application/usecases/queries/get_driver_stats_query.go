package queries

import (
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/pkg/errs"
	"donedelivery/internal/pkg/guard"
)

// GetDriverStatsQuery requests a driver's activity counters since a given
// point in time, typically the start of the current day.
type GetDriverStatsQuery struct {
	guard guard.ConstructorGuard

	driverID kernel.UUID
	since    time.Time
}

// NewGetDriverStatsQuery creates a stats query for the given driver.
// since marks the start of the reporting window and must not be zero.
func NewGetDriverStatsQuery(driverID kernel.UUID, since time.Time) (GetDriverStatsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverStatsQuery{}, errs.NewValueIsInvalidErrorWithCause("driverID", err)
	}
	if since.IsZero() {
		return GetDriverStatsQuery{}, errs.NewValueIsRequiredError("since")
	}

	return GetDriverStatsQuery{
		guard:    guard.NewConstructorGuard(),
		driverID: driverID,
		since:    since,
	}, nil
}

// Validate checks that the query was created through the constructor.
func (q GetDriverStatsQuery) Validate() error {
	return q.guard.Validate(errs.NewValueIsRequiredError("GetDriverStatsQuery must be created via NewGetDriverStatsQuery"))
}

// DriverID returns the driver whose stats are requested.
func (q GetDriverStatsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Since returns the start of the reporting window.
func (q GetDriverStatsQuery) Since() time.Time {
	return q.since
}
