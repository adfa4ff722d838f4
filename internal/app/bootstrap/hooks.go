// Package bootstrap wires the site into the app lifecycle.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/TAPAN-2835/Business-Website/app"
	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/TAPAN-2835/Business-Website/httputil"
	"github.com/TAPAN-2835/Business-Website/internal/app/features/contact"
	"github.com/TAPAN-2835/Business-Website/internal/app/features/health"
	"github.com/TAPAN-2835/Business-Website/internal/app/features/pages"
	"github.com/TAPAN-2835/Business-Website/internal/app/features/static"
	"github.com/TAPAN-2835/Business-Website/internal/app/notify"
	"github.com/TAPAN-2835/Business-Website/internal/app/resources"
	"github.com/TAPAN-2835/Business-Website/internal/app/store"
	"github.com/TAPAN-2835/Business-Website/internal/site"
	"github.com/TAPAN-2835/Business-Website/metrics"
	"github.com/TAPAN-2835/Business-Website/router"
	"github.com/TAPAN-2835/Business-Website/templates"
	"go.uber.org/zap"
)

// ConnectTimeout bounds opening the database.
const ConnectTimeout = 10 * time.Second

// LoadConfig loads the core settings plus AppKeys.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, values, err := config.Load(logger, AppKeys...)
	if err != nil {
		return nil, AppConfig{}, err
	}
	return coreCfg, appConfigFrom(values), nil
}

// ConnectDB loads site content, opens message storage and builds the
// notifier.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	s, err := site.Load(appCfg.SiteFile)
	if err != nil {
		return Deps{}, err
	}
	deps := Deps{Site: s, Notifier: notify.Nop{}}

	if appCfg.DBPath == "" {
		logger.Warn("db_path is empty; contact messages are kept in memory only")
		deps.Messages = store.NewMemory()
	} else {
		if dir := filepath.Dir(appCfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return Deps{}, fmt.Errorf("create db dir: %w", err)
			}
		}
		db, err := store.OpenSQLite(ctx, appCfg.DBPath, store.DefaultSQLiteOptions(), ConnectTimeout)
		if err != nil {
			return Deps{}, err
		}
		deps.SQLite = db
		deps.Messages = db
		logger.Info("sqlite store opened", zap.String("path", appCfg.DBPath))
	}

	if appCfg.NotifyEnabled() {
		m, err := notify.NewMailer(notify.Config{
			Host:         appCfg.SMTPHost,
			Port:         appCfg.SMTPPort,
			Username:     appCfg.SMTPUsername,
			Password:     appCfg.SMTPPassword,
			From:         appCfg.SMTPFrom,
			FromName:     appCfg.SMTPFromName,
			To:           appCfg.NotifyTo,
			SubjectLabel: s.SubjectLabel,
		})
		if err != nil {
			_ = deps.Messages.Close()
			return Deps{}, err
		}
		deps.Notifier = m
		logger.Info("smtp notifications enabled",
			zap.String("host", appCfg.SMTPHost), zap.Int("recipients", len(appCfg.NotifyTo)))
	} else {
		logger.Info("smtp notifications disabled")
	}
	return deps, nil
}

// EnsureSchema creates the messages table when storing on disk.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	if deps.SQLite == nil {
		return nil
	}
	return deps.SQLite.EnsureSchema(ctx)
}

// BuildHandler boots the templates and mounts every feature.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	httputil.SetLogger(logger)

	engine := templates.New(logger, nil)
	if err := engine.Boot(resources.Shared, pages.Templates, contact.Templates); err != nil {
		return nil, fmt.Errorf("boot templates: %w", err)
	}

	pagesHandler := pages.NewHandler(engine, deps.Site)
	svc := contact.NewService(deps.Messages, deps.Notifier, deps.Site, logger, contact.Options{
		SubmitDelay: appCfg.SubmitDelay,
	})
	contactHandler := contact.NewHandler(svc, engine, deps.Site, coreCfg, appCfg.BannerTimeout, logger)

	r := router.New(coreCfg, logger, pagesHandler.NotFound())
	pagesHandler.Routes(r)
	contactHandler.Routes(r)
	static.Mount(r)
	health.Mount(r, map[string]health.Check{"store": deps.Messages.Ping}, logger)
	r.Handle("/metrics", metrics.Handler())

	return r, nil
}

// Shutdown closes the message store.
func Shutdown(ctx context.Context, deps Deps, logger *zap.Logger) error {
	if deps.Messages == nil {
		return nil
	}
	return deps.Messages.Close()
}

// Hooks wires the site into app.Run.
var Hooks = app.Hooks[AppConfig, Deps]{
	Name:         "bizsite",
	LoadConfig:   LoadConfig,
	ConnectDB:    ConnectDB,
	EnsureSchema: EnsureSchema,
	BuildHandler: BuildHandler,
	Shutdown:     Shutdown,
}
