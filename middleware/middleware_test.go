package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TAPAN-2835/Business-Website/config"
)

func TestRequireJSON(t *testing.T) {
	h := RequireJSON(okHandler)
	tests := map[string]int{
		"application/json":                  http.StatusOK,
		"application/json; charset=utf-8":   http.StatusOK,
		"application/problem+json":          http.StatusOK,
		"application/x-www-form-urlencoded": http.StatusUnsupportedMediaType,
		"":                                  http.StatusUnsupportedMediaType,
	}
	for ct, want := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{}"))
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		if got := serve(h, req).Code; got != want {
			t.Errorf("Content-Type %q: status %d, want %d", ct, got, want)
		}
	}
}

func TestLimitBodySize(t *testing.T) {
	h := LimitBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	if got := serve(h, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short"))).Code; got != http.StatusOK {
		t.Errorf("small body status = %d", got)
	}
	if got := serve(h, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much too long"))).Code; got != http.StatusRequestEntityTooLarge {
		t.Errorf("large body status = %d", got)
	}
}

func TestNotFoundHandler(t *testing.T) {
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<h1>Not found</h1>"))
	})
	h := NotFoundHandler(nil, page)

	browser := serve(h, httptest.NewRequest(http.MethodGet, "/missing.html", nil))
	if !strings.Contains(browser.Body.String(), "<h1>") {
		t.Errorf("browser got %q", browser.Body.String())
	}

	api := serve(h, httptest.NewRequest(http.MethodGet, "/api/missing", nil))
	if api.Code != http.StatusNotFound || !strings.Contains(api.Body.String(), `"not_found"`) {
		t.Errorf("api got %d %q", api.Code, api.Body.String())
	}
}

func TestCORSFromConfig(t *testing.T) {
	cfg := &config.CoreConfig{CORS: config.CORSConfig{
		EnableCORS:         true,
		CORSAllowedOrigins: []string{"https://partner.example"},
	}}
	h := CORSFromConfig(cfg)(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://partner.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://partner.example" {
		t.Errorf("allow origin = %q", got)
	}

	off := serve(CORSFromConfig(&config.CoreConfig{})(okHandler), req)
	if got := off.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disabled CORS set allow origin %q", got)
	}
}
