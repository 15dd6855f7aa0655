// Package app wires the planner's repositories, handlers, and optional
// supporting infrastructure (cache, CalDAV export) into a single Container,
// the same dependency-root pattern used for service
// wiring.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/queries"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/planner/infrastructure/cache"
	"github.com/felixgeelhaar/studyflow/internal/planner/infrastructure/caldav"
	"github.com/felixgeelhaar/studyflow/internal/planner/infrastructure/persistence"
	"github.com/felixgeelhaar/studyflow/internal/shared/application"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database/postgres" // registers the postgres driver
	_ "github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database/sqlite"   // registers the sqlite driver
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyflow/pkg/config"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// schemaOwner is satisfied by every planner repository; the container
// calls EnsureSchema on each at startup in place of a standalone
// migration runner (see DESIGN.md).
type schemaOwner interface {
	EnsureSchema(ctx context.Context) error
}

// Container holds every dependency the CLI and HTTP adapters need to run
// the planner core end to end.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	DBConn      database.Connection
	RedisClient *redis.Client

	TaskRepo     pdomain.TaskRepository
	HabitRepo    pdomain.HabitRepository
	SlotRepo     pdomain.SlotRepository
	SettingsRepo pdomain.SettingsRepository
	FeedbackRepo pdomain.FeedbackRepository
	PlanRepo     pdomain.PlanRepository

	// Writers are the concrete repository types, exposed for CLI commands
	// that seed tasks/habits/slots/settings/feedback (the collaborator
	// CRUD the core itself does not own, but which a
	// runnable CLI still needs some way to exercise).
	TaskWriter     *persistence.TaskRepository
	HabitWriter    *persistence.HabitRepository
	SlotWriter     *persistence.SlotRepository
	SettingsWriter *persistence.SettingsRepository
	FeedbackWriter *persistence.FeedbackRepository

	Clock          pdomain.Clock
	EventPublisher eventbus.Publisher
	CalDAVExporter *caldav.Exporter
	Metrics        observability.Metrics
	Health         *observability.HealthRegistry

	RebuildPlanHandler          *commands.RebuildPlanHandler
	UpdateSessionStatusHandler  *commands.UpdateSessionStatusHandler
	RemoveTaskFromPlansHandler  *commands.RemoveTaskFromPlansHandler
	RemoveHabitFromPlansHandler *commands.RemoveHabitFromPlansHandler

	GetLatestPlanHandler *queries.GetLatestPlanHandler
	GetMetricsHandler    *queries.GetMetricsHandler
	ExportICSHandler     *queries.ExportICSHandler

	// OwnerID is the single local owner this instance plans for; a real
	// multi-tenant deployment would derive this per request from an
	// identity collaborator instead.
	OwnerID uuid.UUID
}

// NewContainer connects to the configured backend (Postgres or SQLite,
// detected from cfg.DatabaseDriver/DatabaseURL), ensures the planner
// schema exists, and wires every repository and handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	owner, err := uuid.Parse(cfg.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid STUDYFLOW_OWNER_ID: %w", err)
	}

	driver := database.Driver(cfg.DatabaseDriver)
	if cfg.LocalMode {
		driver = database.DriverSQLite
	}

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     driver,
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database", "driver", conn.Driver())

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		DBConn:  conn,
		Clock:   pdomain.SystemClock{},
		OwnerID: owner,
		Metrics: newMetricsFromConfig(cfg),
	}

	taskRepo := persistence.NewTaskRepository(conn)
	habitRepo := persistence.NewHabitRepository(conn)
	slotRepo := persistence.NewSlotRepository(conn)
	settingsRepo := persistence.NewSettingsRepository(conn)
	feedbackRepo := persistence.NewFeedbackRepository(conn)
	planRepo := persistence.NewPlanRepository(conn)

	// Bootstrap the whole schema under one unit of work so a failed
	// startup never leaves a half-created table set behind.
	uow := database.NewUnitOfWork(conn)
	err = application.WithUnitOfWork(ctx, uow, func(txCtx context.Context) error {
		for _, s := range []schemaOwner{taskRepo, habitRepo, slotRepo, settingsRepo, feedbackRepo, planRepo} {
			if err := s.EnsureSchema(txCtx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	c.TaskWriter, c.HabitWriter, c.SlotWriter, c.SettingsWriter, c.FeedbackWriter = taskRepo, habitRepo, slotRepo, settingsRepo, feedbackRepo
	c.TaskRepo, c.HabitRepo, c.SlotRepo, c.SettingsRepo, c.FeedbackRepo = taskRepo, habitRepo, slotRepo, settingsRepo, feedbackRepo

	var planStore pdomain.PlanRepository = planRepo
	if cfg.RedisURL != "" && !cfg.LocalMode {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("invalid Redis URL, plan cache disabled", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis not available, plan cache disabled", "error", err)
			} else {
				c.RedisClient = redisClient
				planStore = cache.NewPlanCache(redisClient, planRepo)
				logger.Info("connected to Redis, plan cache enabled")
			}
		}
	}
	c.PlanRepo = planStore

	if cfg.RabbitMQURL != "" && !cfg.LocalMode {
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			c.EventPublisher = publisher
		}
	} else {
		// Local mode dispatches events synchronously in process; consumers
		// registered on the bus see the same events a RabbitMQ worker would.
		c.EventPublisher = eventbus.NewInProcessEventBus(logger)
	}

	if cfg.CalDAVEnabled {
		exporter := caldav.NewExporter(cfg.CalDAVBaseURL, cfg.CalDAVUsername, cfg.CalDAVPassword, logger)
		if cfg.CalDAVCalendar != "" {
			exporter = exporter.WithCalendarPath(cfg.CalDAVCalendar)
		}
		c.CalDAVExporter = exporter
	}

	c.Health = observability.NewHealthRegistry()
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))
	if c.RedisClient != nil {
		c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
			return c.RedisClient.Ping(ctx).Err()
		}))
	}

	c.RebuildPlanHandler = commands.NewRebuildPlanHandler(taskRepo, habitRepo, slotRepo, settingsRepo, feedbackRepo, c.PlanRepo, c.Clock, c.EventPublisher, logger)
	c.RebuildPlanHandler.HorizonDays = cfg.PlannerHorizonDays
	c.UpdateSessionStatusHandler = commands.NewUpdateSessionStatusHandler(c.PlanRepo, c.EventPublisher, logger)
	c.RemoveTaskFromPlansHandler = commands.NewRemoveTaskFromPlansHandler(c.PlanRepo, c.EventPublisher, logger)
	c.RemoveHabitFromPlansHandler = commands.NewRemoveHabitFromPlansHandler(c.PlanRepo, c.EventPublisher, logger)

	c.GetLatestPlanHandler = queries.NewGetLatestPlanHandler(c.PlanRepo)
	c.GetMetricsHandler = queries.NewGetMetricsHandler(taskRepo, slotRepo, settingsRepo, c.PlanRepo, c.Clock)
	c.ExportICSHandler = queries.NewExportICSHandler(c.PlanRepo)

	return c, nil
}

// NewLocalContainer is a convenience wrapper for STUDYFLOW_LOCAL_MODE:
// zero-config SQLite, no Redis, no RabbitMQ.
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	cfg.LocalMode = true
	return NewContainer(ctx, cfg, logger)
}

// newMetricsFromConfig picks an in-memory collector for local/dev runs
// and a noop collector otherwise. The `studyflow metrics` command does not
// read this collector; it reports plan metrics from GetMetricsHandler.
func newMetricsFromConfig(cfg *config.Config) observability.Metrics {
	if cfg.LocalMode || cfg.IsDevelopment() {
		return observability.NewInMemoryMetrics()
	}
	return observability.NoopMetrics{}
}

// Close releases every resource the container opened.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}
	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		}
	}
}
