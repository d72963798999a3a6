package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/metrics"
	"github.com/aretw0/automata/pkg/adapters/file"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/loam"
)

// Runtime is an engine wired from configuration, plus what it holds open.
type Runtime struct {
	Engine  *automata.Engine
	Metrics *metrics.Collector
	Logger  *slog.Logger

	closers []io.Closer
}

// Close releases the store connections.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewRuntime builds the engine described by cfg. With debug set, run events
// are also logged at debug level.
func NewRuntime(cfg config.Config, debug bool) (*Runtime, error) {
	logger, err := createLogger(cfg, debug)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Metrics: metrics.New(), Logger: logger}

	mws := []middleware.Middleware{middleware.NewIntegrityMiddleware()}
	if debug {
		mws = append([]middleware.Middleware{middleware.NewLoggingMiddleware(logger)}, mws...)
	}

	storeOpt, closer, err := openStore(cfg.Store, mws...)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	hooks := rt.Metrics.Hooks()
	if debug {
		hooks = domain.ChainHooks(hooks, createDebugHooks(logger))
	}

	rt.Engine = automata.New(
		storeOpt,
		automata.WithLogger(logger),
		automata.WithLifecycleHooks(hooks),
		automata.WithStrictAlphabet(cfg.StrictAlphabet),
	)
	return rt, nil
}

// openStore builds the configured backend. Writable stores are wrapped in mws.
func openStore(cfg config.StoreConfig, mws ...middleware.Middleware) (automata.Option, io.Closer, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", config.StoreMemory:
		return automata.WithStore(middleware.Chain(memory.NewStore(), mws...)), nil, nil

	case config.StoreFile:
		format := file.FormatJSON
		if strings.EqualFold(cfg.Format, "yaml") {
			format = file.FormatYAML
		}
		return automata.WithStore(middleware.Chain(file.New(cfg.Dir, file.WithFormat(format)), mws...)), nil, nil

	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return automata.WithStore(middleware.Chain(s, mws...)), s, nil

	case config.StoreLoam:
		absPath, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid path: %w", err)
		}
		// Read-only keeps Loam from creating its sandbox in dev mode.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		typedRepo := loam.NewTypedRepository[loamAdapter.DocumentMetadata](repo)
		return automata.WithLoader(loamAdapter.New(typedRepo)), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
}

func createLogger(cfg config.Config, debug bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(stderr, level, strings.EqualFold(cfg.LogFormat, "json")), nil
}
