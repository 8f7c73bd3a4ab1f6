package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/shadenet"
	"github.com/aretw0/shadenet/internal/config"
	"github.com/aretw0/shadenet/pkg/adapters/file"
	"github.com/aretw0/shadenet/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/shadenet/pkg/adapters/redis"
	"github.com/aretw0/shadenet/pkg/observability"
	"github.com/aretw0/shadenet/pkg/ports"
)

// Runtime bundles the engine with the resources the CLI must release.
type Runtime struct {
	Engine  *shadenet.Engine
	Metrics *observability.Metrics
	Logger  *slog.Logger
	closers []func() error
}

// Close releases store connections.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewRuntime initializes an engine with standard CLI conventions: the store
// backend comes from cfg, and debug mode logs every authoring event.
func NewRuntime(cfg *config.Config, debug bool) (*Runtime, error) {
	logger := createLogger(cfg, debug)
	rt := &Runtime{
		Metrics: observability.NewMetrics(),
		Logger:  logger,
	}

	engineOpts := []shadenet.Option{
		shadenet.WithLogger(logger),
		shadenet.WithMetrics(rt.Metrics),
	}
	if debug {
		engineOpts = append(engineOpts, shadenet.WithLifecycleHooks(createDebugHooks(logger)))
	}

	var store ports.LayerStore
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile:
		store = file.New(cfg.Store.Dir, file.WithFormat(file.Format(cfg.Store.Format)))
	case config.BackendRedis:
		rs := redisAdapter.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB,
			redisAdapter.WithPrefix(cfg.Store.Redis.Prefix),
			redisAdapter.WithTTL(cfg.Store.Redis.TTL),
		)
		store = rs
		rt.closers = append(rt.closers, rs.Close)
		engineOpts = append(engineOpts,
			shadenet.WithLocker(redisAdapter.NewLocker(rs.Client(), cfg.Store.Redis.Prefix)))
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	engineOpts = append(engineOpts, shadenet.WithStore(store))

	engine, err := shadenet.New(cfg.Store.Dir, engineOpts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = engine

	logger.Debug("runtime ready", "backend", cfg.Store.Backend)
	return rt, nil
}
