package parcel

import (
	"errors"
	"fmt"
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/pkg/errs"
)

const (
	// ParcelTTL is how long a parcel record is retained after creation
	// before the expiry sweep purges it.
	ParcelTTL = 30 * 24 * time.Hour

	// DefaultPaymentMethod is the capture method assigned at creation.
	DefaultPaymentMethod = "paystack"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrProofOfDeliveryRequired is returned when a transition into
	// Delivered is attempted without a proof of delivery.
	ErrProofOfDeliveryRequired = errors.New("proof of delivery is required to mark a parcel delivered")
)

// Parcel is the shipment aggregate root, tracked from creation through the
// delivery lifecycle.
//
// Parcel maintains these invariants:
//   - The tracking number is immutable after creation.
//   - Status always equals the status of the last history entry.
//   - The status history is append-only and monotone in the canonical
//     order pending < picked-up < in-transit < delivered; re-applying the
//     current status is a no-op, not an append.
//   - Pricing is frozen at creation.
//   - A proof of delivery is present if and only if the parcel is Delivered.
//
// All mutation goes through Transition and RecordPayment, which validate
// against the policy table. The aggregate is a pure in-memory value: it
// never talks to storage, and the caller persists the result with an
// optimistic compare-and-set keyed on Version.
type Parcel struct {
	id             kernel.UUID
	trackingNumber kernel.TrackingNumber
	sender         Party
	receiver       Party
	pack           PackageInfo
	pricing        Pricing
	status         Status
	history        []HistoryEntry
	payment        Payment
	driverID       *kernel.UUID
	proof          *ProofOfDelivery
	createdAt      time.Time
	updatedAt      time.Time
	expiresAt      time.Time
	version        int64

	isConstructed bool
}

// TransitionOptions carries the optional inputs of a status transition.
type TransitionOptions struct {
	// Note is an optional free-form remark recorded in the audit trail.
	Note string

	// DriverID assigns a driver to the parcel on the transition into
	// PickedUp. When nil and the actor is a driver, the actor is assigned.
	DriverID *kernel.UUID

	// Proof is the delivery evidence, required on the transition into
	// Delivered and rejected as missing otherwise.
	Proof *ProofOfDelivery

	// Now is the transition timestamp. Callers inject it from a Clock;
	// the zero value falls back to wall-clock time.
	Now time.Time
}

// NewParcel creates a parcel in Pending status with unpaid payment and a
// single seeded history entry. All value objects are validated; pricing is
// frozen as passed and the expiry deadline is set to now + ParcelTTL.
func NewParcel(
	id kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	sender Party,
	receiver Party,
	pack PackageInfo,
	pricing Pricing,
	createdBy Actor,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        Pending,
		payment:       NewUnpaidPayment(DefaultPaymentMethod),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setSender(sender),
		p.setReceiver(receiver),
		p.setPackage(pack),
		p.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(Pending, now, "", createdBy)
	if err != nil {
		return nil, err
	}

	p.history = []HistoryEntry{entry}
	p.createdAt = now
	p.updatedAt = now
	p.expiresAt = now.Add(ParcelTTL)
	p.version = 1

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence, revalidating the
// aggregate invariants: a non-empty history whose last entry matches the
// status, and a proof of delivery present exactly when Delivered.
func RestoreParcel(
	id kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	sender Party,
	receiver Party,
	pack PackageInfo,
	pricing Pricing,
	status Status,
	history []HistoryEntry,
	payment Payment,
	driverID *kernel.UUID,
	proof *ProofOfDelivery,
	createdAt, updatedAt, expiresAt time.Time,
	version int64,
) (*Parcel, error) {
	p := &Parcel{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setSender(sender),
		p.setReceiver(receiver),
		p.setPackage(pack),
		p.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"statusHistory",
			fmt.Errorf("last history entry is %s but status is %s", last, status),
		)
	}
	if (proof != nil) != (status == Delivered) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"proofOfDelivery",
			fmt.Errorf("proof of delivery must be present exactly when status is %s", Delivered),
		)
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError(
			"version",
			fmt.Errorf("%d is not a positive version", version),
		)
	}

	p.status = status
	p.history = append([]HistoryEntry(nil), history...)
	p.payment = payment
	p.driverID = driverID
	p.proof = proof
	p.createdAt = createdAt
	p.updatedAt = updatedAt
	p.expiresAt = expiresAt
	p.version = version

	return p, nil
}

// Validate ensures the Parcel was constructed through NewParcel or
// RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the parcel's immutable tracking number.
func (p *Parcel) TrackingNumber() kernel.TrackingNumber {
	return p.trackingNumber
}

// Sender returns the sending party.
func (p *Parcel) Sender() Party {
	return p.sender
}

// Receiver returns the receiving party.
func (p *Parcel) Receiver() Party {
	return p.receiver
}

// Package returns the package description.
func (p *Parcel) Package() PackageInfo {
	return p.pack
}

// Pricing returns the pricing snapshot frozen at creation.
func (p *Parcel) Pricing() Pricing {
	return p.pricing
}

// Status returns the current delivery status.
func (p *Parcel) Status() Status {
	return p.status
}

// History returns a copy of the append-only status history, in transition
// order.
func (p *Parcel) History() []HistoryEntry {
	return append([]HistoryEntry(nil), p.history...)
}

// Payment returns the current payment state.
func (p *Parcel) Payment() Payment {
	return p.payment
}

// Driver returns the assigned driver's ID, nil if unassigned. The
// reference is weak: the driver entity is owned elsewhere.
func (p *Parcel) Driver() *kernel.UUID {
	return p.driverID
}

// ProofOfDelivery returns the delivery proof, nil unless Delivered.
func (p *Parcel) ProofOfDelivery() *ProofOfDelivery {
	return p.proof
}

// CreatedAt returns the creation time.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// ExpiresAt returns the retention deadline (createdAt + ParcelTTL).
func (p *Parcel) ExpiresAt() time.Time {
	return p.expiresAt
}

// Version returns the optimistic concurrency version of the snapshot this
// aggregate was loaded from. The repository's compare-and-set update
// rejects the write when the stored version has advanced past it.
func (p *Parcel) Version() int64 {
	return p.version
}

// IsExpired reports whether the parcel is past its retention deadline.
func (p *Parcel) IsExpired(now time.Time) bool {
	return now.After(p.expiresAt)
}

// Transition moves the parcel to the target status on behalf of the actor.
//
// Re-applying the current status is an idempotent no-op: no history entry
// is appended and nil is returned. A transition into Delivered without a
// proof fails fast with ErrProofOfDeliveryRequired before the policy is
// consulted. Every other move is validated against the policy table; on
// rejection the parcel is left unmodified and an *InvalidTransitionError
// is returned.
//
// On success the status is updated, one history entry is appended, the
// driver is assigned on the transition into PickedUp, and the proof is
// recorded on the transition into Delivered.
func (p *Parcel) Transition(target Status, actor Actor, opts TransitionOptions) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if target == p.status {
		return nil
	}

	// Cheap check first: do not consult the policy for a delivery attempt
	// that cannot succeed anyway.
	if target == Delivered && opts.Proof == nil {
		return ErrProofOfDeliveryRequired
	}

	if err := AllowedTransition(p.status, target, actor.Role(), p.payment.Status()); err != nil {
		return err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	entry, err := NewHistoryEntry(target, now, opts.Note, actor)
	if err != nil {
		return err
	}

	if target == PickedUp {
		switch {
		case opts.DriverID != nil:
			if err = opts.DriverID.Validate(); err != nil {
				return err
			}
			driverID := *opts.DriverID
			p.driverID = &driverID
		case actor.Role() == RoleDriver:
			actorID := actor.ID()
			p.driverID = &actorID
		}
	}

	if target == Delivered {
		if err = opts.Proof.Validate(); err != nil {
			return err
		}
		proof := *opts.Proof
		p.proof = &proof
	}

	p.status = target
	p.history = append(p.history, entry)
	p.updatedAt = now

	return nil
}

// RecordPayment moves the payment to the target status, independent of the
// delivery lifecycle. Method and reference overwrite the stored values only
// when non-empty; completion records paidAt. Re-applying the current
// payment status is a no-op.
func (p *Parcel) RecordPayment(target PaymentStatus, method, reference string, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if now.IsZero() {
		now = time.Now()
	}

	next, err := p.payment.moveTo(target, method, reference, now)
	if err != nil {
		return err
	}

	if next != p.payment {
		p.payment = next
		p.updatedAt = now
	}
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Parcel) setSender(sender Party) error {
	if err := sender.Validate(); err != nil {
		return fmt.Errorf("sender: %w", err)
	}
	p.sender = sender
	return nil
}

func (p *Parcel) setReceiver(receiver Party) error {
	if err := receiver.Validate(); err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	p.receiver = receiver
	return nil
}

func (p *Parcel) setPackage(pack PackageInfo) error {
	if err := pack.Validate(); err != nil {
		return err
	}
	p.pack = pack
	return nil
}

func (p *Parcel) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	p.pricing = pricing
	return nil
}
