// Package ports defines the contracts between the domain core and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// It is the sole storage contract of the core: create, read, query, and an
// optimistic compare-and-set update.
type ParcelRepository interface {
	// Add persists a new parcel aggregate. Fails when the tracking number
	// already exists, which the creation flow resolves by regenerating.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel with an optimistic
	// compare-and-set: the write succeeds only if the stored version still
	// equals the version the aggregate was loaded with. When the stored
	// version has advanced, Update returns an error wrapping
	// errs.ErrVersionConflict and the caller re-fetches and retries.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	// Returns an error wrapping errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNumber retrieves a parcel by its tracking number.
	// Returns an error wrapping errs.ErrObjectNotFound when absent.
	GetByTrackingNumber(ctx context.Context, trackingNumber kernel.TrackingNumber) (*parcel.Parcel, error)

	// GetAllInStatus retrieves all parcels currently in the given status,
	// most recently updated first. When driverID is non-nil the result is
	// restricted to parcels assigned to that driver.
	GetAllInStatus(ctx context.Context, status parcel.Status, driverID *kernel.UUID) ([]*parcel.Parcel, error)

	// DeleteExpired removes parcels whose retention deadline passed before
	// the given instant and returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
