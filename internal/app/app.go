// Package app wires configuration, storage, services and handlers together
// for the server and scheduler binaries.
package app

import (
	"context"
	"fmt"

	"github.com/segyhp/reminder-engine/internal/cache"
	"github.com/segyhp/reminder-engine/internal/channel"
	"github.com/segyhp/reminder-engine/internal/config"
	"github.com/segyhp/reminder-engine/internal/database"
	"github.com/segyhp/reminder-engine/internal/handler"
	"github.com/segyhp/reminder-engine/internal/reminder"
	"github.com/segyhp/reminder-engine/internal/repository"
	"github.com/segyhp/reminder-engine/internal/service"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Services struct {
	Client   *service.ClientService
	Payment  *service.PaymentService
	Reminder *service.ReminderService
	Backlog  *service.BacklogService
}

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Services Services
}

// New connects to Postgres and Redis and builds every service
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err = redisClient.Ping(ctx).Err(); err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("can't connect to redis: %w", err)
	}

	ch, err := channel.New(cfg, logger.Named("channel"))
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	clientRepo := repository.NewClientRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	backlogRepo := repository.NewBacklogRepository(db)

	backlog := service.NewBacklogService(backlogRepo, cfg, logger)
	calculator := reminder.NewCalculator(reminder.PolicyFromConfig(cfg))
	reminderCache := cache.NewReminderCache(redisClient, cfg.GetReminderLockTTL())

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Services: Services{
			Client:   service.NewClientService(clientRepo, backlog, logger),
			Payment:  service.NewPaymentService(paymentRepo, clientRepo, backlog, logger),
			Reminder: service.NewReminderService(paymentRepo, backlog, calculator, ch, reminderCache, cfg, logger.Named("reminder")),
			Backlog:  backlog,
		},
	}, nil
}

// Router returns the HTTP API over the app's services
func (a *App) Router() *mux.Router {
	return handler.NewRouter(handler.Handlers{
		Health:   handler.NewHealthHandler(a.DB, a.Redis, a.Config.GetHealthTimeout(), a.Logger),
		Client:   handler.NewClientHandler(a.Services.Client),
		Payment:  handler.NewPaymentHandler(a.Services.Payment),
		Reminder: handler.NewReminderHandler(a.Services.Reminder),
		Backlog:  handler.NewBacklogHandler(a.Services.Backlog),
	}, a.Logger)
}

func (a *App) Close() {
	if err := a.Redis.Close(); err != nil {
		a.Logger.Warn("closing redis", zap.Error(err))
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("closing database", zap.Error(err))
	}
}
