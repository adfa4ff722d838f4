// middleware/security.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/TAPAN-2835/Business-Website/config"
)

// SecurityHeadersOptions selects the response security headers. An empty
// string (or zero HSTSMaxAge) leaves that header unset.
type SecurityHeadersOptions struct {
	XFrameOptions         string
	XContentTypeOptions   string
	ReferrerPolicy        string
	HSTSMaxAge            int // seconds; sent on TLS requests only
	HSTSIncludeSubDomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	PermissionsPolicy     string
}

// SitePolicy is the CSP for the marketing pages: everything from self,
// inline styles for the hero gradients, and forms posting back to self.
const SitePolicy = "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; " +
	"script-src 'self'; form-action 'self'; frame-ancestors 'self'; base-uri 'self'"

// DefaultSecurityHeadersOptions returns the headers served on every page.
func DefaultSecurityHeadersOptions() SecurityHeadersOptions {
	return SecurityHeadersOptions{
		XFrameOptions:         "SAMEORIGIN",
		XContentTypeOptions:   "nosniff",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		HSTSMaxAge:            31536000,
		HSTSIncludeSubDomains: true,
		ContentSecurityPolicy: SitePolicy,
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
	}
}

// SecurityHeaders sets the headers described by opts.
func SecurityHeaders(opts SecurityHeadersOptions) func(next http.Handler) http.Handler {
	static := map[string]string{
		"X-Frame-Options":         opts.XFrameOptions,
		"X-Content-Type-Options":  opts.XContentTypeOptions,
		"Referrer-Policy":         opts.ReferrerPolicy,
		"Content-Security-Policy": opts.ContentSecurityPolicy,
		"Permissions-Policy":      opts.PermissionsPolicy,
	}
	var hsts string
	if opts.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(opts.HSTSMaxAge)
		if opts.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
		if opts.HSTSPreload {
			hsts += "; preload"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range static {
				if v != "" {
					h.Set(k, v)
				}
			}
			if hsts != "" && r.TLS != nil {
				h.Set("Strict-Transport-Security", hsts)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersFromConfig serves the default headers, dropping HSTS in
// dev so a local certificate never pins a browser to HTTPS.
func SecurityHeadersFromConfig(coreCfg *config.CoreConfig) func(next http.Handler) http.Handler {
	opts := DefaultSecurityHeadersOptions()
	if coreCfg == nil || coreCfg.Env != "prod" {
		opts.HSTSMaxAge = 0
	}
	return SecurityHeaders(opts)
}
