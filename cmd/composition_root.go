package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	lifecycle  services.OrderLifecycle
	uowFactory ports.UnitOfWorkFactory
	reader     queries.OrderReader
	probe      ports.StoreProbe
	closeStore func() error
}

// NewCompositionRoot opens the store chosen by config.StoreDriver. The
// postgres schema is migrated on startup.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		logger:     logger,
		lifecycle:  services.NewOrderLifecycle(services.NewCarrierPricer()),
		closeStore: func() error { return nil },
	}

	switch config.StoreDriver {
	case StoreMemory:
		store := memory.NewStore()
		root.uowFactory = memory.NewUnitOfWorkFactory(store)
		root.reader = store
		root.probe = store

	case StorePostgres:
		dsn := postgres.DSN(config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
		db, err := postgres.Open(ctx, dsn, logger.With("component", "postgres"))
		if err != nil {
			return nil, err
		}
		if err = postgres.Migrate(db); err != nil {
			return nil, errors.Join(fmt.Errorf("migrate: %w", err), postgres.Close(db))
		}
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		root.reader = orderrepo.NewGormOrderRepository(db)
		root.probe = postgres.NewProbe(db)
		root.closeStore = func() error { return postgres.Close(db) }

	default:
		return nil, fmt.Errorf("unknown store driver %q", config.StoreDriver)
	}

	logger.Info("order store ready", "driver", config.StoreDriver)
	return root, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return commands.FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateCreateQuoteCommandHandler() commands.CreateQuoteCommandHandler {
	return commands.NewCreateQuoteCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateBookCarrierCommandHandler() commands.BookCarrierCommandHandler {
	return commands.NewBookCarrierCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateCheckHealthQueryHandler() queries.CheckHealthQueryHandler {
	return queries.NewCheckHealthQueryHandler(c.probe)
}

// CreateHTTPRouter builds the echo instance. Metrics are registered with reg
// and served from gatherer.
func (c *CompositionRoot) CreateHTTPRouter(
	ctx context.Context,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*echo.Echo, error) {
	doc, err := httpadapter.LoadSpec(ctx)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	metrics := httpadapter.NewMetrics(reg, gatherer)
	server := httpadapter.NewServer(
		httpadapter.Handlers{
			CreateOrder: c.CreateCreateOrderCommandHandler(),
			CreateQuote: c.CreateCreateQuoteCommandHandler(),
			BookCarrier: c.CreateBookCarrierCommandHandler(),
			CancelOrder: c.CreateCancelOrderCommandHandler(),
			ListOrders:  c.CreateListOrdersQueryHandler(),
			CheckHealth: c.CreateCheckHealthQueryHandler(),
		},
		httpadapter.BuildInfo{BuildNumber: c.config.BuildNumber, CommitHash: c.config.CommitHash},
		metrics,
		c.logger,
	)

	return httpadapter.NewRouter(server, doc, metrics, c.logger)
}

// CreateJobManager returns a manager with the stale order job, or with no jobs
// when the sweep is disabled.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if !c.config.StaleOrderSweepEnabled() {
		c.logger.Info("stale order job disabled")
		return jobs.NewJobManager()
	}

	staleOrders := jobs.NewStaleOrderJob(
		c.CreateCancelStaleOrdersCommandHandler(),
		c.config.StaleOrderSchedule,
		c.config.StaleOrderTTL,
		time.Now,
		c.logger,
	)
	return jobs.NewJobManager(staleOrders)
}

// Close releases the store.
func (c *CompositionRoot) Close() error {
	return c.closeStore()
}
