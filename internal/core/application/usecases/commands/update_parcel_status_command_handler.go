package commands

import (
	"context"
	"errors"

	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/core/ports"
	"donedelivery/internal/pkg/errs"
)

// transitionRetryAttempts bounds re-fetch-and-retry when a concurrent
// writer wins the compare-and-set race, e.g. two drivers claiming the same
// pending parcel.
const transitionRetryAttempts = 3

// UpdateParcelStatusCommandHandler orchestrates a parcel status transition:
// load a snapshot, apply the transition on the aggregate, persist with an
// optimistic compare-and-set, and fan out notifications after commit.
//
// Concurrency: when the compare-and-set loses the race the handler
// re-fetches the latest snapshot and retries the transition, bounded to
// transitionRetryAttempts; a still-losing attempt surfaces the version
// conflict to the actor. A retried idempotent transition (the other writer
// already applied the same status) commits as a no-op.
//
// Example:
//
//	handler := NewUpdateParcelStatusCommandHandler(uowFactory, dispatcher, clock)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, parcel.ErrInvalidTransition):
//	    // illegal move for this actor/payment state
//	case errors.Is(err, parcel.ErrProofOfDeliveryRequired):
//	    // delivery attempted without evidence
//	case errors.Is(err, errs.ErrVersionConflict):
//	    // parcel already claimed by a concurrent writer
//	}
type UpdateParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	dispatcher ports.NotificationDispatcher
	clock      ports.Clock
}

// NewUpdateParcelStatusCommandHandler creates a handler for status
// transitions. The dispatcher receives a StatusChangedEvent after each
// committed transition; it runs detached and can never fail the command.
func NewUpdateParcelStatusCommandHandler(
	uowFactory ParcelUoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Handle processes the status transition command.
func (h UpdateParcelStatusCommandHandler) Handle(ctx context.Context, cmd UpdateParcelStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for range transitionRetryAttempts {
		changed, err := h.attempt(ctx, cmd)
		if err == nil {
			if changed != nil {
				h.notifyAsync(ctx, cmd, changed)
			}
			return nil
		}
		if !errors.Is(err, errs.ErrVersionConflict) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

// attempt runs one load-transition-persist cycle. Returns the updated
// aggregate when a new history entry was produced, nil for an idempotent
// no-op.
func (h UpdateParcelStatusCommandHandler) attempt(
	ctx context.Context,
	cmd UpdateParcelStatusCommand,
) (*parcel.Parcel, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	aggregate, err := repo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if aggregate.Status() == cmd.Target() {
		// Idempotent re-apply: nothing to persist, nothing to notify.
		return nil, nil
	}

	now := h.clock.Now()

	opts := parcel.TransitionOptions{
		Note:     cmd.Note(),
		DriverID: cmd.DriverID(),
		Now:      now,
	}
	if cmd.ProofImageURL() != "" {
		proof, proofErr := parcel.NewProofOfDelivery(cmd.ProofImageURL(), now, cmd.Actor().ID())
		if proofErr != nil {
			return nil, proofErr
		}
		opts.Proof = &proof
	}

	if err = aggregate.Transition(cmd.Target(), cmd.Actor(), opts); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// notifyAsync fans the committed transition out to the notification
// channels. Dispatch runs detached from the request: it must never block
// or fail the transition, and channel errors stay inside the dispatcher.
func (h UpdateParcelStatusCommandHandler) notifyAsync(
	ctx context.Context,
	cmd UpdateParcelStatusCommand,
	aggregate *parcel.Parcel,
) {
	if h.dispatcher == nil {
		return
	}

	event := ports.StatusChangedEvent{
		ParcelID:       aggregate.ID(),
		TrackingNumber: aggregate.TrackingNumber(),
		Status:         aggregate.Status(),
		Note:           cmd.Note(),
		Sender:         aggregate.Sender(),
		Receiver:       aggregate.Receiver(),
		OccurredAt:     aggregate.UpdatedAt(),
	}

	go h.dispatcher.Notify(context.WithoutCancel(ctx), event)
}
