package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TAPAN-2835/Business-Website/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeaders_Defaults(t *testing.T) {
	rec := serve(SecurityHeaders(DefaultSecurityHeadersOptions())(okHandler),
		httptest.NewRequest(http.MethodGet, "/", nil))

	tests := []struct {
		header string
		want   string
	}{
		{"X-Frame-Options", "SAMEORIGIN"},
		{"X-Content-Type-Options", "nosniff"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"Content-Security-Policy", SitePolicy},
		{"Permissions-Policy", "geolocation=(), microphone=(), camera=()"},
	}
	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}
	if hsts := rec.Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("HSTS should not be set for HTTP requests, got %q", hsts)
	}
}

func TestSecurityHeaders_HSTS_OnlyForTLS(t *testing.T) {
	opts := DefaultSecurityHeadersOptions()
	opts.HSTSPreload = true
	handler := SecurityHeaders(opts)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	req.TLS = &tls.ConnectionState{}
	rec := serve(handler, req)

	want := "max-age=31536000; includeSubDomains; preload"
	if got := rec.Header().Get("Strict-Transport-Security"); got != want {
		t.Errorf("HSTS = %q, want %q", got, want)
	}
}

func TestSecurityHeaders_DisabledHeaders(t *testing.T) {
	rec := serve(SecurityHeaders(SecurityHeadersOptions{})(okHandler),
		httptest.NewRequest(http.MethodGet, "/", nil))
	for _, h := range []string{"X-Frame-Options", "Referrer-Policy", "Content-Security-Policy", "Strict-Transport-Security"} {
		if v := rec.Header().Get(h); v != "" {
			t.Errorf("%s should be unset, got %q", h, v)
		}
	}
}

func TestSecurityHeadersFromConfig_NoHSTSInDev(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	req.TLS = &tls.ConnectionState{}

	dev := serve(SecurityHeadersFromConfig(&config.CoreConfig{Env: "dev"})(okHandler), req)
	if v := dev.Header().Get("Strict-Transport-Security"); v != "" {
		t.Errorf("dev HSTS = %q, want unset", v)
	}
	prod := serve(SecurityHeadersFromConfig(&config.CoreConfig{Env: "prod"})(okHandler), req)
	if v := prod.Header().Get("Strict-Transport-Security"); v == "" {
		t.Error("prod HSTS missing")
	}
}
