package parcel

import (
	"fmt"

	"donedelivery/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of a parcel.
// It implements a state machine with defined transitions so parcels follow
// the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> PickedUp ──> InTransit ──> Delivered
//
// Each forward step is driver-only; Pending -> PickedUp additionally
// requires completed payment, and InTransit -> Delivered requires a proof
// of delivery. Re-applying the current status is an idempotent no-op.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status when a parcel is first created.
	// Parcels in this status are awaiting pickup by a driver.
	Pending

	// PickedUp indicates a driver has collected the parcel from the sender.
	PickedUp

	// InTransit indicates the parcel is on its way to the receiver.
	InTransit

	// Delivered indicates the parcel reached the receiver. This is the
	// terminal state and requires a proof of delivery.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		PickedUp:      "picked-up",
		InTransit:     "in-transit",
		Delivered:     "delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		PickedUp:  "picked-up",
		InTransit: "in-transit",
		Delivered: "delivered",
	}
}

// StatusFromString parses a status from its persisted string form.
// Returns an error for anything outside the closed status set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the closed status set.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the persisted string form of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is the final lifecycle state.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// IsReached reports whether this status comes at or before the given
// status in the canonical order. Used to render timelines and to enforce
// monotonic status history.
func (s Status) IsReached(current Status) bool {
	return s != StatusUnknown && current != StatusUnknown && s <= current
}
