package cmd

import (
	"log/slog"
	"time"

	httpin "donedelivery/internal/adapters/in/http"
	"donedelivery/internal/adapters/out/notify"
	"donedelivery/internal/adapters/out/postgres"
	"donedelivery/internal/adapters/out/redis/trackingcache"
	"donedelivery/internal/core/application/usecases/commands"
	"donedelivery/internal/core/application/usecases/queries"
	"donedelivery/internal/core/domain/services"
	"donedelivery/internal/core/ports"
	"donedelivery/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	calculator    services.PricingCalculator
	dispatcher    ports.NotificationDispatcher
	trackingCache ports.TrackingCache
	clock         ports.Clock
	logger        *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (CompositionRoot, error) {
	calculator, err := services.NewPricingCalculator(configs.PricePerKm, configs.Currency)
	if err != nil {
		return CompositionRoot{}, err
	}

	var trackingCache ports.TrackingCache
	if redisClient != nil {
		trackingCache = trackingcache.NewRedisTrackingCache(redisClient, 0)
	}

	dispatcher := notify.NewDispatcher(logger,
		notify.NewLogChannel(notify.ChannelWhatsApp, logger),
		notify.NewLogChannel(notify.ChannelSMS, logger),
		notify.NewLogChannel(notify.ChannelEmail, logger),
	)

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		calculator:    calculator,
		dispatcher:    dispatcher,
		trackingCache: trackingCache,
		clock:         ports.ClockFunc(time.Now),
		logger:        logger,
	}, nil
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory(), c.calculator, c.clock)
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	return commands.NewUpdateParcelStatusCommandHandler(c.parcelUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreatePurgeExpiredParcelsCommandHandler() commands.PurgeExpiredParcelsCommandHandler {
	return commands.NewPurgeExpiredParcelsCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetParcelByTrackingNumberQueryHandler() queries.GetParcelByTrackingNumberQueryHandler {
	return queries.NewGetParcelByTrackingNumberQueryHandler(c.gormDB, c.trackingCache, c.logger)
}

func (c *CompositionRoot) CreateGetParcelsByStatusQueryHandler() queries.GetParcelsByStatusQueryHandler {
	return queries.NewGetParcelsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverStatsQueryHandler() queries.GetDriverStatsQueryHandler {
	return queries.NewGetDriverStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateParcelCommandHandler(),
		c.CreateUpdateParcelStatusCommandHandler(),
		c.CreateRecordPaymentCommandHandler(),
		c.CreateGetParcelByTrackingNumberQueryHandler(),
		c.CreateGetParcelsByStatusQueryHandler(),
		c.CreateGetDriverStatsQueryHandler(),
		c.clock,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePurgeExpiredParcelsCommandHandler(), c.logger)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}
