package commands

import (
	"errors"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand represents a request to register a new shipment:
// who sends it, who receives it, and what is being shipped. Pricing and the
// tracking number are derived by the handler, not supplied by the caller.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewCreateParcelCommand(parcelID, sender, receiver, pack, createdBy)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory, calculator, clock)
//	result, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	sender    parcel.Party
	receiver  parcel.Party
	pack      parcel.PackageInfo
	createdBy parcel.Actor

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a new shipment.
// All value objects must already be constructed and valid.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	sender parcel.Party,
	receiver parcel.Party,
	pack parcel.PackageInfo,
	createdBy parcel.Actor,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSender(sender),
		cmd.setReceiver(receiver),
		cmd.setPackage(pack),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateParcelCommandIsNotConstructed if validation fails.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Sender returns the sending party.
func (c CreateParcelCommand) Sender() parcel.Party {
	return c.sender
}

// Receiver returns the receiving party.
func (c CreateParcelCommand) Receiver() parcel.Party {
	return c.receiver
}

// Package returns the package description.
func (c CreateParcelCommand) Package() parcel.PackageInfo {
	return c.pack
}

// CreatedBy returns the actor registering the shipment.
func (c CreateParcelCommand) CreatedBy() parcel.Actor {
	return c.createdBy
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSender(sender parcel.Party) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	c.sender = sender
	return nil
}

func (c *CreateParcelCommand) setReceiver(receiver parcel.Party) error {
	if err := receiver.Validate(); err != nil {
		return err
	}
	c.receiver = receiver
	return nil
}

func (c *CreateParcelCommand) setPackage(pack parcel.PackageInfo) error {
	if err := pack.Validate(); err != nil {
		return err
	}
	c.pack = pack
	return nil
}

func (c *CreateParcelCommand) setCreatedBy(createdBy parcel.Actor) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	c.createdBy = createdBy
	return nil
}
