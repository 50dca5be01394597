// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read directly from the database into response models,
// bypassing the domain aggregate where a flat view is all the caller needs.
package queries

import (
	"errors"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/pkg/guard"
)

var ErrGetParcelByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetParcelByTrackingNumberQuery must be created via NewGetParcelByTrackingNumberQuery constructor",
)

// GetParcelByTrackingNumberQuery requests the public tracking view of a
// parcel: its current status, the delivery timeline, and the proof of
// delivery once delivered.
type GetParcelByTrackingNumberQuery struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber

	guard guard.ConstructorGuard
}

// NewGetParcelByTrackingNumberQuery creates a tracking lookup query.
func NewGetParcelByTrackingNumberQuery(trackingNumber kernel.TrackingNumber) (GetParcelByTrackingNumberQuery, error) {
	if err := trackingNumber.Validate(); err != nil {
		return GetParcelByTrackingNumberQuery{}, err
	}

	return GetParcelByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByTrackingNumberQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number to look up.
func (q GetParcelByTrackingNumberQuery) TrackingNumber() kernel.TrackingNumber {
	return q.trackingNumber
}
