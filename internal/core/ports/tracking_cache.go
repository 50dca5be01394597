package ports

import (
	"context"

	"donedelivery/internal/core/domain/model/kernel"
)

// TrackingCache is an optional read-side index from tracking number to
// parcel identifier. It is purely an accelerator: a nil cache, a miss, or a
// cache error all fall back to the repository, and stale entries are
// overwritten on the next lookup.
type TrackingCache interface {
	// GetParcelID returns the cached parcel ID for a tracking number.
	// The second result reports whether the entry was present.
	GetParcelID(ctx context.Context, trackingNumber kernel.TrackingNumber) (kernel.UUID, bool, error)

	// SetParcelID records the parcel ID for a tracking number.
	SetParcelID(ctx context.Context, trackingNumber kernel.TrackingNumber, id kernel.UUID) error
}
