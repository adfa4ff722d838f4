package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TAPAN-2835/Business-Website/config"
	"go.uber.org/zap"
)

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.CoreConfig{HTTP: config.HTTPConfig{ShutdownTimeout: 2 * time.Second}}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := newHTTPServer(cfg, handler, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, srv, ln, nil, zap.NewNop()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestListenAndServe_NilArgs(t *testing.T) {
	if err := ListenAndServeWithContext(context.Background(), nil, http.NotFoundHandler(), nil); err == nil {
		t.Error("nil cfg accepted")
	}
	if err := ListenAndServeWithContext(context.Background(), &config.CoreConfig{}, nil, nil); err == nil {
		t.Error("nil handler accepted")
	}
}

func TestHTTPRedirectHandler(t *testing.T) {
	tests := []struct {
		host      string
		httpsPort int
		target    string
		wantCode  int
		wantLoc   string
	}{
		{"example.com", 443, "/contact.html?x=1", http.StatusMovedPermanently, "https://example.com/contact.html?x=1"},
		{"example.com:80", 443, "/", http.StatusMovedPermanently, "https://example.com/"},
		{"localhost:8080", 8443, "/about.html", http.StatusMovedPermanently, "https://localhost:8443/about.html"},
		{"[::1]:8080", 443, "/", http.StatusMovedPermanently, "https://[::1]/"},
		{"evil.com/x", 443, "/", http.StatusBadRequest, ""},
		{"example.com:99999", 443, "/", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.target, nil)
		req.Host = tt.host
		rec := httptest.NewRecorder()
		httpRedirectHandler(tt.httpsPort).ServeHTTP(rec, req)
		if rec.Code != tt.wantCode {
			t.Errorf("%s: code = %d, want %d", tt.host, rec.Code, tt.wantCode)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
			t.Errorf("%s: Location = %q, want %q", tt.host, loc, tt.wantLoc)
		}
	}
}

func TestValidateTLSFiles(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "cert.pem")
	key := filepath.Join(dir, "key.pem")
	if err := os.WriteFile(cert, []byte("c"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(key, []byte("k"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := validateTLSFiles(cert, key); err != nil {
		t.Errorf("valid files: %v", err)
	}
	if err := validateTLSFiles(filepath.Join(dir, "missing.pem"), key); err == nil {
		t.Error("missing cert accepted")
	}
	if err := validateTLSFiles(dir, key); err == nil {
		t.Error("directory accepted as cert")
	}
}
