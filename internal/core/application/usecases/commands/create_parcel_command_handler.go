package commands

import (
	"context"
	"errors"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/core/domain/services"
	"donedelivery/internal/core/ports"
	"donedelivery/internal/pkg/errs"
)

// trackingNumberAttempts bounds regeneration when a freshly generated
// tracking number collides with an existing parcel.
const trackingNumberAttempts = 3

// ErrTrackingNumberExhausted is returned when tracking number generation
// collided with existing parcels on every attempt.
var ErrTrackingNumberExhausted = errors.New("could not generate a unique tracking number")

// CreateParcelResult carries what the caller needs to continue the flow:
// the tracking number to surface to the customer and the amount to charge.
type CreateParcelResult struct {
	ParcelID       kernel.UUID
	TrackingNumber kernel.TrackingNumber
	TotalAmount    kernel.Money
}

// CreateParcelCommandHandler handles the business logic for shipment
// registration: quotes the price at the configured rate, generates a unique
// tracking number, and persists the parcel in pending status with unpaid
// payment.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, calculator, clock)
//	cmd, _ := NewCreateParcelCommand(parcelID, sender, receiver, pack, createdBy)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("shipment registration failed: %w", err)
//	}
//	fmt.Printf("created %s, amount due %s", result.TrackingNumber, result.TotalAmount)
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	calculator services.PricingCalculator
	clock      ports.Clock
}

// NewCreateParcelCommandHandler creates a handler for shipment registration.
// Requires a ParcelUoWFactory for transactional persistence, the pricing
// calculator holding the configured rate, and a clock for timestamps.
func NewCreateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	calculator services.PricingCalculator,
	clock ports.Clock,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		clock:      clock,
	}
}

// Handle processes the shipment registration command.
//
// The tracking number is generated and collision-checked against storage;
// on collision a fresh candidate is generated, bounded to
// trackingNumberAttempts before surfacing ErrTrackingNumberExhausted. The
// price is computed from the package distance and frozen on the parcel.
func (h CreateParcelCommandHandler) Handle(
	ctx context.Context,
	cmd CreateParcelCommand,
) (CreateParcelResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateParcelResult{}, err
	}

	pricing, err := h.calculator.Price(cmd.Package().DistanceKm())
	if err != nil {
		return CreateParcelResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateParcelResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	trackingNumber, err := h.generateUniqueTrackingNumber(ctx, repo)
	if err != nil {
		return CreateParcelResult{}, err
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		trackingNumber,
		cmd.Sender(),
		cmd.Receiver(),
		cmd.Package(),
		pricing,
		cmd.CreatedBy(),
		h.clock.Now(),
	)
	if err != nil {
		return CreateParcelResult{}, err
	}

	if err = repo.Add(ctx, newParcel); err != nil {
		return CreateParcelResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateParcelResult{}, err
	}

	return CreateParcelResult{
		ParcelID:       newParcel.ID(),
		TrackingNumber: newParcel.TrackingNumber(),
		TotalAmount:    newParcel.Pricing().Total(),
	}, nil
}

// generateUniqueTrackingNumber produces a candidate and checks storage for
// collisions, regenerating up to trackingNumberAttempts times.
func (h CreateParcelCommandHandler) generateUniqueTrackingNumber(
	ctx context.Context,
	repo ports.ParcelRepository,
) (kernel.TrackingNumber, error) {
	for range trackingNumberAttempts {
		candidate := kernel.GenerateTrackingNumber(h.clock.Now())

		_, err := repo.GetByTrackingNumber(ctx, candidate)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return candidate, nil
		}
		if err != nil {
			return kernel.TrackingNumber{}, err
		}
		// Taken, regenerate.
	}

	return kernel.TrackingNumber{}, ErrTrackingNumberExhausted
}
