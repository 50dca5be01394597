package notify

import (
	"context"
	"log/slog"
)

// LogChannel is a development channel that writes the message to the log
// instead of an external provider. It stands in for WhatsApp, SMS, or email
// transports until real provider credentials are configured.
type LogChannel struct {
	name   string
	logger *slog.Logger
}

// NewLogChannel creates a log-backed channel with the given name.
func NewLogChannel(name string, logger *slog.Logger) *LogChannel {
	return &LogChannel{
		name:   name,
		logger: logger.With("component", "notify", "channel", name),
	}
}

// Name identifies the channel in logs.
func (c *LogChannel) Name() string {
	return c.name
}

// Send logs the message instead of delivering it.
func (c *LogChannel) Send(ctx context.Context, destination, message string) error {
	c.logger.InfoContext(ctx, "notification",
		"destination", destination,
		"message", message)
	return nil
}
