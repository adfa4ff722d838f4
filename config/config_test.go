package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func newFlagSet() *pflag.FlagSet {
	return pflag.NewFlagSet("test", pflag.ContinueOnError)
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, vals, err := LoadFrom(nil, newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Env != "dev" || cfg.HTTP.HTTPPort != 8080 {
		t.Errorf("unexpected defaults: env=%q port=%d", cfg.Env, cfg.HTTP.HTTPPort)
	}
	if cfg.HTTP.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.MaxRequestBodyBytes != 64<<10 {
		t.Errorf("MaxRequestBodyBytes = %d", cfg.MaxRequestBodyBytes)
	}
	if len(vals) != 0 {
		t.Errorf("app values = %v, want empty", vals)
	}
}

func TestLoadFrom_Precedence(t *testing.T) {
	t.Setenv("BIZSITE_HTTP_PORT", "9000")
	t.Setenv("BIZSITE_LOG_LEVEL", "WARN")
	t.Setenv("BIZSITE_NOTIFY_TO", `["a@example.com","b@example.com"]`)
	t.Setenv("BIZSITE_SUBMIT_DELAY", "250ms")

	keys := []AppKey{
		{Name: "site_name", Default: "Acme", Desc: "site name"},
		{Name: "notify_to", Default: []string{}, Desc: "recipients"},
		{Name: "submit_delay", Default: "1500ms", Desc: "delay"},
		{Name: "smtp_port", Default: 587, Desc: "port"},
	}
	args := []string{"--http_port=9100", "--site_name=Globex"}
	cfg, vals, err := LoadFrom(nil, newFlagSet(), args, keys...)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.HTTP.HTTPPort != 9100 {
		t.Errorf("flag should beat env: port = %d", cfg.HTTP.HTTPPort)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if got := vals.String("site_name"); got != "Globex" {
		t.Errorf("site_name = %q", got)
	}
	if diff := cmp.Diff([]string{"a@example.com", "b@example.com"}, vals.StringSlice("notify_to")); diff != "" {
		t.Errorf("notify_to mismatch (-want +got):\n%s", diff)
	}
	if got := vals.Duration("submit_delay", time.Second); got != 250*time.Millisecond {
		t.Errorf("submit_delay = %v", got)
	}
	if got := vals.Int("smtp_port"); got != 587 {
		t.Errorf("smtp_port = %d", got)
	}
}

func TestLoadFrom_ValidationErrors(t *testing.T) {
	tests := map[string][]string{
		"bad env":             {"--env=staging"},
		"https without certs": {"--use_https"},
		"acme without https":  {"--use_lets_encrypt"},
		"cors without origin": {"--enable_cors"},
		"negative body limit": {"--max_request_body_bytes=-1"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, _, err := LoadFrom(nil, newFlagSet(), args); err == nil {
				t.Fatal("expected a configuration error")
			}
		})
	}
}

func TestAppKeyConflict(t *testing.T) {
	_, _, err := LoadFrom(nil, newFlagSet(), nil, AppKey{Name: "http_port", Default: 1})
	if err == nil {
		t.Fatal("expected conflict with core flag")
	}
}

func TestParseDurationFlexible(t *testing.T) {
	tests := []struct {
		in      any
		want    time.Duration
		wantErr bool
	}{
		{"90s", 90 * time.Second, false},
		{"120", 120 * time.Second, false},
		{"", time.Minute, false},
		{30, 30 * time.Second, false},
		{int64(2), 2 * time.Second, false},
		{1.5, 1500 * time.Millisecond, false},
		{"-5s", time.Minute, true},
		{"soon", time.Minute, true},
		{nil, time.Minute, false},
	}
	for _, tt := range tests {
		got, err := parseDurationFlexible(tt.in, time.Minute)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("parseDurationFlexible(%v) = %v, %v", tt.in, got, err)
		}
	}
}
