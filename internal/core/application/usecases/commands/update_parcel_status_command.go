package commands

import (
	"errors"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/pkg/guard"
)

var ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
	"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
)

// UpdateParcelStatusCommand represents a request to move a parcel through
// its delivery lifecycle: which parcel, the target status, the actor
// attempting the move, and the optional note, driver assignment, and proof
// of delivery.
//
// Example:
//
//	actor, _ := parcel.NewActor(driverID, parcel.RoleDriver)
//	cmd, err := NewUpdateParcelStatusCommand(parcelID, parcel.PickedUp, actor, "collected at gate", nil, "")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, parcel.ErrInvalidTransition) {
//	    // surface the rejected move to the caller
//	}
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID      kernel.UUID
	target        parcel.Status
	actor         parcel.Actor
	note          string
	driverID      *kernel.UUID
	proofImageURL string

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a command to transition a parcel.
// driverID optionally assigns a driver on pickup; proofImageURL carries the
// delivery evidence for the transition into delivered.
func NewUpdateParcelStatusCommand(
	parcelID kernel.UUID,
	target parcel.Status,
	actor parcel.Actor,
	note string,
	driverID *kernel.UUID,
	proofImageURL string,
) (UpdateParcelStatusCommand, error) {
	cmd := UpdateParcelStatusCommand{
		note:          note,
		proofImageURL: proofImageURL,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setTarget(target),
		cmd.setActor(actor),
		cmd.setDriverID(driverID),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateParcelStatusCommandIsNotConstructed if validation fails.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to transition.
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Target returns the status to transition into.
func (c UpdateParcelStatusCommand) Target() parcel.Status {
	return c.target
}

// Actor returns the principal attempting the transition.
func (c UpdateParcelStatusCommand) Actor() parcel.Actor {
	return c.actor
}

// Note returns the optional audit note.
func (c UpdateParcelStatusCommand) Note() string {
	return c.note
}

// DriverID returns the optional driver to assign on pickup.
func (c UpdateParcelStatusCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// ProofImageURL returns the delivery evidence URL, empty when absent.
func (c UpdateParcelStatusCommand) ProofImageURL() string {
	return c.proofImageURL
}

func (c *UpdateParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelStatusCommand) setTarget(target parcel.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *UpdateParcelStatusCommand) setActor(actor parcel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *UpdateParcelStatusCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	id := *driverID
	c.driverID = &id
	return nil
}
