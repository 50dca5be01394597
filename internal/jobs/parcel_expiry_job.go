package jobs

import (
	"context"
	"log/slog"

	"donedelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ParcelExpiryJob manages the scheduled purge of expired parcels.
// Runs hourly to remove parcels whose retention deadline has passed.
type ParcelExpiryJob struct {
	handler commands.PurgeExpiredParcelsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewParcelExpiryJob creates a new job for purging expired parcels.
// Uses PurgeExpiredParcelsCommandHandler to sweep the parcel table hourly.
func NewParcelExpiryJob(handler commands.PurgeExpiredParcelsCommandHandler, logger *slog.Logger) *ParcelExpiryJob {
	return &ParcelExpiryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "parcel_expiry_job"),
	}
}

// Start begins the parcel expiry job to run at the top of every hour.
func (j *ParcelExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewPurgeExpiredParcelsCommand()

		purged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Parcel expiry job failed", "error", err)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Expired parcels purged", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Parcel expiry job started (running hourly)")
	return nil
}

// Stop stops the parcel expiry job.
func (j *ParcelExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Parcel expiry job stopped")
}
