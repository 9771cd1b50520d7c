package cmd

import (
	"log/slog"
	"time"

	"mealdash/internal/adapters/out/geo"
	"mealdash/internal/adapters/out/postgres"
	redisstore "mealdash/internal/adapters/out/redis"
	"mealdash/internal/adapters/out/rest"
	"mealdash/internal/core/application/usecases/commands"
	"mealdash/internal/core/application/usecases/queries"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/ports"
	"mealdash/internal/georoute"
	"mealdash/internal/jobs"
	"mealdash/internal/tracking"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory and one database connection; the geo resolver
// caches on top of the Google Maps provider for the process lifetime.
type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	locationStore *redisstore.CourierLocationStore
	geoResolver   *georoute.Resolver
	restClient    *rest.Client
	logger        *slog.Logger
}

// NewCompositionRoot builds the object graph from already-opened
// connections. Fails only if the Google Maps client cannot be constructed.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (CompositionRoot, error) {
	mapsProvider, err := geo.NewGoogleMapsProvider(config.GoogleMapsAPIKey)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		locationStore: redisstore.NewCourierLocationStore(redisClient),
		geoResolver:   georoute.NewResolver(mapsProvider),
		restClient:    rest.NewClient(config.OrderServiceURL),
		logger:        logger,
	}, nil
}

// GeoResolver exposes the process-wide caching geo resolver for components
// composed outside this root, such as tracking pollers.
func (c *CompositionRoot) GeoResolver() ports.GeoProvider {
	return c.geoResolver
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateReportCourierLocationCommandHandler() commands.ReportCourierLocationCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportCourierLocationCommandHandler(f, c.locationStore)
}

func (c *CompositionRoot) CreateCreateDeliveriesCommandHandler() commands.CreateDeliveriesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveriesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB, c.locationStore)
}

func (c *CompositionRoot) CreateGetAllDeliveriesQueryHandler() queries.GetAllDeliveriesQueryHandler {
	return queries.NewGetAllDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDeliveriesQueryHandler() queries.GetAvailableDeliveriesQueryHandler {
	return queries.NewGetAvailableDeliveriesQueryHandler(c.gormDB)
}

// CreateTrackingPoller builds a poller that refreshes the tracking view for
// one order on the given interval. Order and delivery snapshots come from
// the order service REST API; routes come from the shared geo resolver.
func (c *CompositionRoot) CreateTrackingPoller(
	orderID kernel.UUID,
	interval time.Duration,
	sink tracking.ViewSink,
) (*tracking.Poller, error) {
	fetchers := tracking.Fetchers{
		Orders:     c.restClient,
		Deliveries: c.restClient,
	}
	return tracking.NewPoller(orderID, interval, fetchers, c.geoResolver, sink, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCreateDeliveriesCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
