package commands

import (
	"context"
	"errors"

	"donedelivery/internal/core/ports"
	"donedelivery/internal/pkg/errs"
)

// RecordPaymentCommandHandler applies payment state changes to a parcel
// with the same optimistic-concurrency discipline as status transitions:
// load, mutate, compare-and-set, bounded retry on version conflict.
type RecordPaymentCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      ports.Clock
}

// NewRecordPaymentCommandHandler creates a handler for payment updates.
func NewRecordPaymentCommandHandler(uowFactory ParcelUoWFactory, clock ports.Clock) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the payment update command.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for range transitionRetryAttempts {
		err := h.attempt(ctx, cmd)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrVersionConflict) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func (h RecordPaymentCommandHandler) attempt(ctx context.Context, cmd RecordPaymentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	aggregate, err := repo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if aggregate.Payment().Status() == cmd.Target() {
		return nil
	}

	if err = aggregate.RecordPayment(cmd.Target(), cmd.Method(), cmd.Reference(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
