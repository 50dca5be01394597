package parcel

import (
	"errors"

	"donedelivery/internal/pkg/errs"
)

// Party is a value object describing one side of a shipment: the sender or
// the receiver. Name and address are required; phone, email, and whatsapp
// are optional contact fields that drive notification fan-out.
type Party struct {
	name     string
	phone    string
	email    string
	whatsapp string
	address  string
}

// NewParty creates a shipment party. Name and address must be non-empty;
// the contact fields may be blank.
func NewParty(name, phone, email, whatsapp, address string) (Party, error) {
	var err error
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if address == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address"))
	}
	if err != nil {
		return Party{}, err
	}

	return Party{
		name:     name,
		phone:    phone,
		email:    email,
		whatsapp: whatsapp,
		address:  address,
	}, nil
}

// Name returns the party's display name.
func (p Party) Name() string {
	return p.name
}

// Phone returns the party's phone number, empty if not supplied.
func (p Party) Phone() string {
	return p.phone
}

// Email returns the party's email address, empty if not supplied.
func (p Party) Email() string {
	return p.email
}

// WhatsApp returns the party's WhatsApp number, empty if not supplied.
func (p Party) WhatsApp() string {
	return p.whatsapp
}

// Address returns the party's physical address.
func (p Party) Address() string {
	return p.address
}

// Validate checks the party invariants.
func (p Party) Validate() error {
	if p.name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if p.address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}
