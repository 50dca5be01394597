package commands

import (
	"context"

	"donedelivery/internal/core/ports"
)

// PurgeExpiredParcelsCommandHandler removes parcels whose retention
// deadline has passed. Runs inside a single transaction; the count of
// purged parcels is returned for the job to log.
type PurgeExpiredParcelsCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      ports.Clock
}

// NewPurgeExpiredParcelsCommandHandler creates a handler for the expiry
// sweep.
func NewPurgeExpiredParcelsCommandHandler(
	uowFactory ParcelUoWFactory,
	clock ports.Clock,
) PurgeExpiredParcelsCommandHandler {
	return PurgeExpiredParcelsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the expiry sweep and returns how many parcels were
// purged.
func (h PurgeExpiredParcelsCommandHandler) Handle(
	ctx context.Context,
	cmd PurgeExpiredParcelsCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.ParcelRepository().DeleteExpired(ctx, h.clock.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
