package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/gormstore"
	"orderflow/internal/adapters/out/kafka/orderevents"
	"orderflow/internal/adapters/out/memory"
	"orderflow/internal/adapters/out/redisstore"
	"orderflow/internal/core/application/events"
	"orderflow/internal/core/application/facade"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/clock"
	"orderflow/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived component of the service.
type CompositionRoot struct {
	config Config
	logger *slog.Logger
	clock  clock.Clock

	store      *memory.Store
	uowFactory commands.OrderUoWFactory
	fanout     *events.Fanout
	registry   *prometheus.Registry
	scheduler  *jobs.LifecycleScheduler
	orders     *facade.Orders

	closers []io.Closer
}

// NewCompositionRoot opens the configured durable store, loads the committed orders
// and wires the handlers around them.
func NewCompositionRoot(ctx context.Context, config Config, clk clock.Clock, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:   config,
		logger:   logger,
		clock:    clk,
		registry: prometheus.NewRegistry(),
	}

	snapshots, err := c.openSnapshotStore()
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.store, err = memory.NewStore(ctx, snapshots, logger)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.uowFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.store.Create()
	})

	if err = c.wireEvents(); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	advance := c.CreateAdvanceOrderStatusCommandHandler()
	c.scheduler = jobs.NewLifecycleScheduler(&advance, clk, logger)

	create := c.CreateCreateOrderCommandHandler()
	cancel := c.CreateCancelOrderCommandHandler()
	c.orders, err = facade.NewOrders(
		&create,
		&cancel,
		c.CreateGetOrderQueryHandler(),
		c.CreateGetUserOrdersQueryHandler(),
		c.CreateGetActiveOrderQueryHandler(),
		logger,
	)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.fanout.Add(c.orders)

	return c, nil
}

func (c *CompositionRoot) openSnapshotStore() (ports.OrderSnapshotStore, error) {
	switch c.config.StoreDriver {
	case StoreDriverSQLite:
		db, err := gormstore.OpenSQLite(c.config.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.closeGorm(db)
		return gormstore.New(db, c.logger)
	case StoreDriverPostgres:
		db, err := gormstore.OpenPostgres(gormstore.PostgresConfig{
			Host:     c.config.DBHost,
			Port:     c.config.DBPort,
			User:     c.config.DBUser,
			Password: c.config.DBPassword,
			Name:     c.config.DBName,
			SslMode:  c.config.DBSslMode,
		})
		if err != nil {
			return nil, err
		}
		c.closeGorm(db)
		return gormstore.New(db, c.logger)
	case StoreDriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
		})
		c.closers = append(c.closers, rdb)
		return redisstore.New(rdb, c.config.RedisKeyPrefix, c.logger)
	case StoreDriverMemory:
		c.logger.Warn("orders are kept in memory only and are lost on restart")
		return memory.NewSnapshotStore(c.logger), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.config.StoreDriver)
	}
}

func (c *CompositionRoot) closeGorm(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		c.logger.Warn("cannot access sql pool", "error", err)
		return
	}
	c.closers = append(c.closers, sqlDB)
}

// wireEvents builds the fan-out: Prometheus counters always, Kafka when a broker is
// configured. The facade joins once it exists.
func (c *CompositionRoot) wireEvents() error {
	if err := c.registry.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	if err := c.registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return err
	}

	orderMetrics, err := metrics.NewOrderMetrics(c.registry)
	if err != nil {
		return err
	}
	c.fanout = events.NewFanout(c.logger, orderMetrics)

	if c.config.KafkaHost == "" {
		c.logger.Info("KAFKA_HOST is not set, order events stay in process")
		return nil
	}

	writer := orderevents.NewWriter(c.config.KafkaHost)
	c.closers = append(c.closers, writer)
	producer, err := orderevents.NewProducer(writer, c.config.KafkaOrderChangedTopic, uuid.NewString)
	if err != nil {
		return err
	}
	c.fanout.Add(producer)
	return nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.uowFactory, c.scheduler, c.fanout, c.clock, c.config.SimulatedLatency, c.logger,
	)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.uowFactory, c.scheduler, c.fanout, c.clock, c.config.SimulatedLatency, c.logger,
	)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.uowFactory, c.fanout, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetActiveOrderQueryHandler() queries.GetActiveOrderQueryHandler {
	return queries.NewGetActiveOrderQueryHandler(c.store)
}

// CreateHTTPServer builds the REST adapter over the facade.
func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	return httpin.NewServer(c.orders, metrics.Handler(c.registry), []byte(c.config.JWTSecret), c.logger)
}

// CreateJobManager resumes the lifecycle of every order still in progress and returns
// the manager that drives it.
func (c *CompositionRoot) CreateJobManager(ctx context.Context) (*jobs.JobManager, error) {
	active, err := c.store.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}
	c.scheduler.Resume(ctx, active)
	return jobs.NewJobManager(c.scheduler, c.logger), nil
}

func (c *CompositionRoot) Orders() *facade.Orders {
	return c.orders
}

func (c *CompositionRoot) Scheduler() *jobs.LifecycleScheduler {
	return c.scheduler
}

// Close releases the store connections and the Kafka writer.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
