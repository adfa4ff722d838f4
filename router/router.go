// router/router.go
package router

import (
	"net/http"

	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/TAPAN-2835/Business-Website/logging"
	"github.com/TAPAN-2835/Business-Website/metrics"
	"github.com/TAPAN-2835/Business-Website/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// New returns a chi.Router carrying the site-wide middleware stack:
// request id, real ip, panic recovery, body limit, security headers,
// compression, metrics and access logging. notFound renders the HTML 404
// page for browsers; API clients always get JSON.
func New(coreCfg *config.CoreConfig, logger *zap.Logger, notFound http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Recoverer(logger))
	r.Use(middleware.LimitBodySize(coreCfg.MaxRequestBodyBytes))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))
	r.Use(middleware.CompressFromConfig(coreCfg, logger))
	r.Use(metrics.HTTPMetrics)
	r.Use(logging.RequestLogger(logger))

	r.NotFound(middleware.NotFoundHandler(logger, notFound))
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler(logger))

	return r
}
