// Package notify implements the notification fan-out for parcel status
// changes. The dispatcher picks a destination per channel from the
// receiver's contact details and delivers a rendered message; failures are
// logged and never reach the transition that produced the event.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/core/ports"
)

// Channel names recognized by the destination selection.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
	ChannelEmail    = "email"
)

// Dispatcher fans status-change events out to the registered channels.
// Each channel gets the receiver contact detail matching its name: the
// whatsapp channel gets the WhatsApp number, sms the phone number, email
// the email address. Channels whose destination is blank are skipped.
type Dispatcher struct {
	channels []ports.NotificationChannel
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(logger *slog.Logger, channels ...ports.NotificationChannel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		logger:   logger.With("component", "notify"),
	}
}

// Notify delivers the event to every channel with a usable destination.
// A failing channel is logged and skipped so the remaining channels still
// get the message.
func (d *Dispatcher) Notify(ctx context.Context, event ports.StatusChangedEvent) {
	message := renderMessage(event)

	for _, channel := range d.channels {
		destination := destinationFor(channel.Name(), event.Receiver)
		if destination == "" {
			continue
		}

		if err := channel.Send(ctx, destination, message); err != nil {
			d.logger.WarnContext(ctx, "notification delivery failed",
				"channel", channel.Name(),
				"trackingNumber", event.TrackingNumber.String(),
				"status", event.Status.String(),
				"error", err)
			continue
		}

		d.logger.InfoContext(ctx, "notification delivered",
			"channel", channel.Name(),
			"trackingNumber", event.TrackingNumber.String(),
			"status", event.Status.String())
	}
}

func destinationFor(channelName string, receiver parcel.Party) string {
	switch channelName {
	case ChannelWhatsApp:
		return receiver.WhatsApp()
	case ChannelSMS:
		return receiver.Phone()
	case ChannelEmail:
		return receiver.Email()
	default:
		return ""
	}
}

func renderMessage(event ports.StatusChangedEvent) string {
	var body string
	switch event.Status {
	case parcel.Pending:
		body = "has been created and is awaiting pickup"
	case parcel.PickedUp:
		body = "has been picked up from the sender"
	case parcel.InTransit:
		body = "is on its way to the destination"
	case parcel.Delivered:
		body = "has been successfully delivered"
	default:
		body = "has been updated"
	}

	message := fmt.Sprintf("Your parcel %s %s.", event.TrackingNumber.String(), body)
	if event.Note != "" {
		message += " " + event.Note
	}
	return message
}
