package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Name string `json:"name"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"name":"Ann"}`, ""},
		{"empty", ``, "request body is empty"},
		{"unknown field", `{"nme":"Ann"}`, `unknown field "nme"`},
		{"wrong type", `{"name":5}`, `invalid value for field "name": expected string`},
		{"two values", `{"name":"a"}{"name":"b"}`, "request body contains multiple JSON values"},
		{"syntax", `{"name":}`, "malformed JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := BindJSON(r, &p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("BindJSON: %v", err)
				}
				if p.Name != "Ann" {
					t.Errorf("Name = %q", p.Name)
				}
				return
			}
			if err == nil || !strings.HasPrefix(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestBindJSON_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 100)+`"}`))
	r.Body = http.MaxBytesReader(rec, r.Body, 16)
	var p payload
	if err := BindJSON(r, &p); !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("err = %v", err)
	}
}

func TestJSONFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONFieldErrors(rec, map[string]string{"email": "Please enter a valid email address"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	var got struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Error != "validation_failed" || got.Fields["email"] == "" {
		t.Errorf("body = %+v", got)
	}
}

func TestWriteJSON_ClampsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 42, map[string]string{"ok": "no"})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
