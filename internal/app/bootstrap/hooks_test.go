package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/TAPAN-2835/Business-Website/internal/app/notify"
	"github.com/TAPAN-2835/Business-Website/internal/app/store"
	"github.com/TAPAN-2835/Business-Website/internal/testutil"
	"github.com/TAPAN-2835/Business-Website/metrics"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func loadConfig(t *testing.T, args ...string) (*config.CoreConfig, AppConfig) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	core, values, err := config.LoadFrom(testutil.Logger(), fs, args, AppKeys...)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return core, appConfigFrom(values)
}

func TestAppConfigDefaults(t *testing.T) {
	_, cfg := loadConfig(t)
	want := AppConfig{
		DBPath:        "data/bizsite.db",
		SMTPPort:      587,
		SMTPFromName:  "Website",
		NotifyTo:      []string{},
		BannerTimeout: 5 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.NotifyEnabled() {
		t.Error("notifications enabled without smtp_host")
	}
}

func TestAppConfigFlags(t *testing.T) {
	_, cfg := loadConfig(t,
		"--db_path=",
		"--smtp_host=mail.example.com",
		"--notify_to=ops@example.com, sales@example.com",
		"--submit_delay=1500ms",
		"--banner_timeout=3",
	)
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if diff := cmp.Diff([]string{"ops@example.com", "sales@example.com"}, cfg.NotifyTo); diff != "" {
		t.Errorf("NotifyTo mismatch (-want +got):\n%s", diff)
	}
	if cfg.SubmitDelay != 1500*time.Millisecond || cfg.BannerTimeout != 3*time.Second {
		t.Errorf("durations = %v, %v", cfg.SubmitDelay, cfg.BannerTimeout)
	}
	if !cfg.NotifyEnabled() {
		t.Error("notifications disabled with host and recipients set")
	}
}

func TestConnectDB_SQLite(t *testing.T) {
	core, _ := loadConfig(t)
	cfg := AppConfig{DBPath: filepath.Join(t.TempDir(), "nested", "site.db")}
	ctx := testutil.Context(t)

	deps, err := ConnectDB(ctx, core, cfg, testutil.Logger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = Shutdown(context.Background(), deps, testutil.Logger()) })

	if deps.SQLite == nil {
		t.Fatal("sqlite store not opened")
	}
	if _, ok := deps.Notifier.(notify.Nop); !ok {
		t.Errorf("notifier = %T, want notify.Nop", deps.Notifier)
	}
	if err := EnsureSchema(ctx, core, cfg, deps, testutil.Logger()); err != nil {
		t.Fatal(err)
	}
	if _, err := deps.Messages.Recent(ctx, 1); err != nil {
		t.Errorf("query after schema: %v", err)
	}
}

func TestConnectDB_Errors(t *testing.T) {
	core, _ := loadConfig(t)
	ctx := testutil.Context(t)

	if _, err := ConnectDB(ctx, core, AppConfig{SiteFile: filepath.Join(t.TempDir(), "missing.yaml")}, testutil.Logger()); err == nil {
		t.Error("missing site file accepted")
	}
	bad := AppConfig{SMTPHost: "mail.example.com", NotifyTo: []string{"ops@example.com"}}
	if _, err := ConnectDB(ctx, core, bad, testutil.Logger()); err == nil {
		t.Error("smtp without a from address accepted")
	}
}

func newSite(t *testing.T) http.Handler {
	t.Helper()
	metrics.RegisterDefault(testutil.Logger())
	core, _ := loadConfig(t)
	deps := Deps{Site: testutil.Site(t), Messages: store.NewMemory(), Notifier: notify.Nop{}}
	h, err := BuildHandler(core, AppConfig{}, deps, testutil.Logger())
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestBuildHandler_Routes(t *testing.T) {
	h := newSite(t)

	tests := []struct {
		method string
		path   string
		accept string
		code   int
		want   string
	}{
		{http.MethodGet, "/", "", http.StatusOK, "Build a business your customers love"},
		{http.MethodGet, "/about.html", "", http.StatusOK, "About us"},
		{http.MethodGet, "/services", "", http.StatusOK, "Support &amp; Hosting"},
		{http.MethodGet, "/contact", "", http.StatusOK, `id="contactForm"`},
		{http.MethodGet, "/static/css/site.css", "", http.StatusOK, ".contact-form"},
		{http.MethodGet, "/health", "", http.StatusOK, `"store":"ok"`},
		{http.MethodGet, "/missing.html", "text/html", http.StatusNotFound, "Page not found"},
		{http.MethodGet, "/api/missing", "", http.StatusNotFound, `"not_found"`},
		{http.MethodDelete, "/contact", "", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers missing")
			}
		})
	}
}

func TestBuildHandler_SubmissionCounted(t *testing.T) {
	h := newSite(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(
		`{"name":"Jane Doe","email":"jane@example.com","subject":"general","message":"Please call me back this week."}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `contact_submissions_total{channel="api",outcome="accepted"}`) {
		t.Error("accepted submission not exported")
	}
}
