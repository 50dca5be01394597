package ports

import (
	"context"
	"time"

	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
)

// StatusChangedEvent describes a committed status transition, carrying the
// snapshot the notification fan-out needs without re-reading storage.
type StatusChangedEvent struct {
	ParcelID       kernel.UUID
	TrackingNumber kernel.TrackingNumber
	Status         parcel.Status
	Note           string
	Sender         parcel.Party
	Receiver       parcel.Party
	OccurredAt     time.Time
}

// NotificationChannel is one delivery medium for customer notifications:
// messaging (WhatsApp), SMS, or email. Implementations own their transport;
// the core only hands them a destination and a rendered message.
type NotificationChannel interface {
	// Name identifies the channel in logs, e.g. "whatsapp".
	Name() string

	// Send delivers the message to the destination. Errors are reported to
	// the dispatcher, which logs them; they never reach the transition
	// caller.
	Send(ctx context.Context, destination, message string) error
}

// NotificationDispatcher fans a status change out to the configured
// channels. Dispatch is fire-and-forget from the caller's perspective:
// a failing channel is logged and skipped, never propagated, and must
// never block or fail the transition that produced the event. Delivery is
// at least once; retries are the caller's concern, not the dispatcher's.
type NotificationDispatcher interface {
	Notify(ctx context.Context, event StatusChangedEvent)
}
