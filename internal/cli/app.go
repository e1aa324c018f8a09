package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/rechat"
	"github.com/aretw0/rechat/internal/adapters/file"
	"github.com/aretw0/rechat/internal/config"
	"github.com/aretw0/rechat/internal/logging"
	"github.com/aretw0/rechat/internal/validator"
	"github.com/aretw0/rechat/pkg/adapters/memory"
	"github.com/aretw0/rechat/pkg/adapters/redis"
	"github.com/aretw0/rechat/pkg/observability"
	"github.com/aretw0/rechat/pkg/ports"
	"github.com/aretw0/rechat/pkg/session"
)

// App bundles the components every command builds from the configuration.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Engine   *rechat.Engine
	Store    ports.StateStore
	Sessions *session.Manager

	closers []func() error
}

// NewApp wires logger, metrics, engine, store and session manager.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return NewAppWithLogger(ctx, cfg, logging.New(level))
}

// NewAppWithLogger is NewApp with an explicit logger.
func NewAppWithLogger(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	hooks := observability.Combine(observability.LogHooks(logger), app.Metrics.Hooks())
	app.Engine = rechat.New(
		rechat.WithLogger(logger),
		rechat.WithLifecycleHooks(hooks),
	)
	if err := validator.ValidateRules(app.Engine.Rules()); err != nil {
		return nil, fmt.Errorf("invalid command table: %w", err)
	}

	var sessionOpts []session.Option
	sessionOpts = append(sessionOpts, session.WithLogger(logger))

	switch cfg.Store {
	case config.StoreMemory:
		app.Store = memory.NewStore()
	case config.StoreFile:
		app.Store = file.New(cfg.SessionDir)
	case config.StoreRedis:
		var storeOpts []redis.Option
		if cfg.Redis.Prefix != "" {
			storeOpts = append(storeOpts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, storeOpts...)
		app.closers = append(app.closers, store.Close)
		if err := store.Ping(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		if cfg.Redis.Lock {
			sessionOpts = append(sessionOpts, session.WithLocker(redis.NewLocker(store.Client(), cfg.Redis.Prefix)))
		}
		app.Store = store
	default:
		return nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}

	app.Sessions = session.NewManager(app.Store, app.Engine, sessionOpts...)
	logger.Debug("app ready", "store", cfg.Store)
	return app, nil
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
