package commands

import (
	"errors"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand represents a payment state change reported by the
// payment provider callback: completion with a capture reference,
// cancellation, or refund. Payment state moves independently of the
// delivery lifecycle.
//
// Example:
//
//	cmd, err := NewRecordPaymentCommand(parcelID, parcel.PaymentCompleted, "paystack", "DN_573920118")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("payment update failed: %w", err)
//	}
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	target    parcel.PaymentStatus
	method    string
	reference string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment state
// change. Method and reference may be empty; they overwrite stored values
// only when provided.
func NewRecordPaymentCommand(
	parcelID kernel.UUID,
	target parcel.PaymentStatus,
	method, reference string,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		method:    method,
		reference: reference,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setTarget(target),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordPaymentCommandIsNotConstructed if validation fails.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel being paid for.
func (c RecordPaymentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Target returns the payment status to record.
func (c RecordPaymentCommand) Target() parcel.PaymentStatus {
	return c.target
}

// Method returns the capture method, empty to keep the stored one.
func (c RecordPaymentCommand) Method() string {
	return c.method
}

// Reference returns the provider transaction reference, if any.
func (c RecordPaymentCommand) Reference() string {
	return c.reference
}

func (c *RecordPaymentCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *RecordPaymentCommand) setTarget(target parcel.PaymentStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
