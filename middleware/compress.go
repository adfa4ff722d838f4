// middleware/compress.go
package middleware

import (
	"net/http"

	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// compressibleTypes are the content types the site actually serves as text.
var compressibleTypes = []string{
	"text/html",
	"text/css",
	"text/plain",
	"text/javascript",
	"application/javascript",
	"application/json",
	"image/svg+xml",
}

// CompressFromConfig returns gzip/deflate compression for text responses,
// or an identity middleware when compression is disabled.
// Levels outside 1..9 are clamped with a warning.
func CompressFromConfig(coreCfg *config.CoreConfig, logger *zap.Logger) func(next http.Handler) http.Handler {
	if coreCfg == nil || !coreCfg.EnableCompression {
		return passthrough
	}
	level := coreCfg.CompressionLevel
	if level < 1 || level > 9 {
		clamped := min(max(level, 1), 9)
		if logger != nil {
			logger.Warn("compression level clamped", zap.Int("from", level), zap.Int("to", clamped))
		}
		level = clamped
	}
	return middleware.Compress(level, compressibleTypes...)
}

func passthrough(next http.Handler) http.Handler { return next }
