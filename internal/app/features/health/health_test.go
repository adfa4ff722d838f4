package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

func runHealth(t *testing.T, checks map[string]Check) (int, Response) {
	t.Helper()
	r := chi.NewRouter()
	Mount(r, checks, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Check
		code   int
		want   Response
	}{
		{
			name: "liveness",
			code: http.StatusOK,
			want: Response{Status: "ok"},
		},
		{
			name: "all healthy",
			checks: map[string]Check{
				"store": func(context.Context) error { return nil },
				"nil":   nil,
			},
			code: http.StatusOK,
			want: Response{Status: "ok", Checks: map[string]string{"store": "ok", "nil": "ok"}},
		},
		{
			name: "one failing",
			checks: map[string]Check{
				"store": func(context.Context) error { return errors.New("database is locked") },
				"other": func(context.Context) error { return nil },
			},
			code: http.StatusServiceUnavailable,
			want: Response{Status: "error", Checks: map[string]string{
				"store": "error: database is locked",
				"other": "ok",
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, got := runHealth(t, tt.checks)
			if code != tt.code {
				t.Errorf("status = %d, want %d", code, tt.code)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_CheckGetsDeadline(t *testing.T) {
	var hasDeadline bool
	runHealth(t, map[string]Check{"store": func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}})
	if !hasDeadline {
		t.Error("check context has no deadline")
	}
}
