// app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/TAPAN-2835/Business-Website/logging"
	"github.com/TAPAN-2835/Business-Website/metrics"
	"github.com/TAPAN-2835/Business-Website/server"
	"go.uber.org/zap"
)

// SchemaTimeout bounds Hooks.EnsureSchema.
const SchemaTimeout = 30 * time.Second

// Hooks are the integration points a site provides to Run.
type Hooks[C any, D any] struct {
	// Name is used for logging only.
	Name string

	// LoadConfig returns the core settings and the site's own settings.
	LoadConfig func(logger *zap.Logger) (*config.CoreConfig, C, error)

	// ConnectDB opens storage and any other backends.
	ConnectDB func(ctx context.Context, core *config.CoreConfig, appCfg C, logger *zap.Logger) (D, error)

	// EnsureSchema creates tables or indexes. Optional.
	EnsureSchema func(ctx context.Context, core *config.CoreConfig, appCfg C, db D, logger *zap.Logger) error

	// BuildHandler wires routers, middleware and features.
	BuildHandler func(core *config.CoreConfig, appCfg C, db D, logger *zap.Logger) (http.Handler, error)

	// Shutdown releases what ConnectDB opened. Optional; runs after the
	// server has stopped.
	Shutdown func(ctx context.Context, db D, logger *zap.Logger) error
}

// Run performs the startup sequence: bootstrap logger, config, final
// logger, metrics, backends, schema, signal wiring, handler, then serve
// until shutdown.
func Run[C any, D any](ctx context.Context, hooks Hooks[C, D]) error {
	if hooks.LoadConfig == nil || hooks.ConnectDB == nil || hooks.BuildHandler == nil {
		return errors.New("app: LoadConfig, ConnectDB and BuildHandler hooks are required")
	}

	bootstrap := logging.BootstrapLogger()
	defer func() { _ = bootstrap.Sync() }()
	bootstrap.Info("bootstrap logger initialized", zap.String("app", hooks.Name))

	coreCfg, appCfg, err := hooks.LoadConfig(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		return fmt.Errorf("load config: %w", err)
	}
	bootstrap.Info("config loaded",
		zap.String("env", coreCfg.Env),
		zap.String("log_level", coreCfg.LogLevel),
	)

	logger := logging.MustBuildLogger(coreCfg.LogLevel, coreCfg.Env)
	defer func() { _ = logger.Sync() }()
	logger.Info("logger initialized", zap.String("app", hooks.Name))
	logger.Debug("core config", zap.String("config", coreCfg.Dump()))

	metrics.RegisterDefault(logger)

	deps, err := hooks.ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		logger.Error("backend connect failed", zap.Error(err))
		return fmt.Errorf("connect: %w", err)
	}
	if hooks.Shutdown != nil {
		defer func() {
			shCtx, cancel := context.WithTimeout(context.Background(), coreCfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := hooks.Shutdown(shCtx, deps, logger); err != nil {
				logger.Warn("backend shutdown failed", zap.Error(err))
			}
		}()
	}

	if hooks.EnsureSchema != nil {
		schemaCtx, cancel := context.WithTimeout(ctx, SchemaTimeout)
		err := hooks.EnsureSchema(schemaCtx, coreCfg, appCfg, deps, logger)
		cancel()
		if err != nil {
			logger.Error("schema ensure failed", zap.Error(err))
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	ctx, cancel := server.WithShutdownSignals(ctx, logger)
	defer cancel()

	handler, err := hooks.BuildHandler(coreCfg, appCfg, deps, logger)
	if err != nil {
		logger.Error("handler build failed", zap.Error(err))
		return fmt.Errorf("build handler: %w", err)
	}

	if err := server.ListenAndServeWithContext(ctx, coreCfg, handler, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
