package parcel

import (
	"fmt"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/pkg/errs"
)

// Role identifies who is acting on a parcel. Transitions are validated
// against the actor's role, not any ambient session state.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the sender who created the shipment.
	RoleCustomer

	// RoleDriver is the delivery driver moving the parcel through its
	// lifecycle. All forward status transitions are driver-only.
	RoleDriver

	// RoleSystem is an automated actor, e.g. the payment confirmation hook.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleDriver:   "driver",
		RoleSystem:   "system",
	}
}

// RoleFromString parses a role from its persisted string form.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role is one of the closed role set.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the persisted string form of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the identified principal attempting an operation on a parcel.
// It replaces the original application's ambient current-user state with an
// explicit parameter.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates an actor from an identity and role, validating both.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks that the actor carries a constructed identity and role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
