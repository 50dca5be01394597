package commands

import (
	"errors"

	"donedelivery/internal/pkg/guard"
)

var ErrPurgeExpiredParcelsCommandIsNotConstructed = errors.New(
	"PurgeExpiredParcelsCommand must be created via NewPurgeExpiredParcelsCommand constructor",
)

// PurgeExpiredParcelsCommand triggers removal of parcels past their
// retention deadline. This is the scheduled sweep behind the 30-day
// expiry; it is a parameterless command run by the expiry job.
//
// Example:
//
//	cmd := NewPurgeExpiredParcelsCommand()
//	purged, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("expiry sweep failed: %v", err)
//	}
type PurgeExpiredParcelsCommand struct {
	guard guard.ConstructorGuard
}

// NewPurgeExpiredParcelsCommand creates a command to run the expiry sweep.
func NewPurgeExpiredParcelsCommand() PurgeExpiredParcelsCommand {
	return PurgeExpiredParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrPurgeExpiredParcelsCommandIsNotConstructed if validation fails.
func (c *PurgeExpiredParcelsCommand) Validate() error {
	return c.guard.Validate(
		ErrPurgeExpiredParcelsCommandIsNotConstructed,
	)
}
