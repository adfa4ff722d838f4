// middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/go-chi/cors"
)

// CORSFromConfig applies the configured CORS policy, or nothing when
// enable_cors is false. The site mounts it on /api only.
func CORSFromConfig(coreCfg *config.CoreConfig) func(next http.Handler) http.Handler {
	if coreCfg == nil || !coreCfg.CORS.EnableCORS {
		return passthrough
	}

	methods := coreCfg.CORS.CORSAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodPost, http.MethodOptions}
	}
	headers := coreCfg.CORS.CORSAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Accept", "Content-Type"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   coreCfg.CORS.CORSAllowedOrigins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: coreCfg.CORS.CORSAllowCredentials,
		MaxAge:           coreCfg.CORS.CORSMaxAge,
	})
}
