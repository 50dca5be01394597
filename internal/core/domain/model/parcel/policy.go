package parcel

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for any status transition rejected by
// the policy table: an illegal status pair, a wrong actor role, or an unmet
// payment gate.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a rejected status transition together with
// the attempted pair and the rule that failed.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s -> %s (%s)", ErrInvalidTransition, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitionRule captures the requirements for one legal status move.
type transitionRule struct {
	requiredRole    Role
	requiresPayment bool
}

// transitionRules is the exhaustive table of legal status moves. Encoding
// the state machine as a table keeps the legal-move set auditable in one
// place instead of scattered through handlers. Same-status re-application
// is handled by the caller as an idempotent no-op and never reaches the
// table; every pair absent from the table is rejected.
var transitionRules = map[Status]map[Status]transitionRule{
	Pending: {
		PickedUp: {requiredRole: RoleDriver, requiresPayment: true},
	},
	PickedUp: {
		InTransit: {requiredRole: RoleDriver},
	},
	InTransit: {
		Delivered: {requiredRole: RoleDriver},
	},
}

// AllowedTransition checks whether moving a parcel from current to next is
// legal for the given actor role and payment state. Returns nil when the
// move is allowed, or an *InvalidTransitionError naming the failed rule.
//
// The proof-of-delivery requirement on the transition into Delivered is
// enforced by Parcel.Transition before the policy is consulted.
func AllowedTransition(current, next Status, role Role, payment PaymentStatus) error {
	if err := current.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	rule, ok := transitionRules[current][next]
	if !ok {
		return &InvalidTransitionError{From: current, To: next}
	}

	if role != rule.requiredRole {
		return &InvalidTransitionError{
			From:   current,
			To:     next,
			Reason: fmt.Sprintf("only a %s may perform this transition, got %s", rule.requiredRole, role),
		}
	}

	if rule.requiresPayment && payment != PaymentCompleted {
		return &InvalidTransitionError{
			From:   current,
			To:     next,
			Reason: fmt.Sprintf("payment must be completed, got %s", payment),
		}
	}

	return nil
}
