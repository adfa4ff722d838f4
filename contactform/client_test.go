package contactform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHTTPSubmitter_Success(t *testing.T) {
	var got Snapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	snap := NewSnapshot(validValues, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	if err := NewHTTPSubmitter(srv.URL + DefaultEndpoint).Submit(context.Background(), snap); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("posted snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPSubmitter_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"validation_failed","message":"check the form","fields":{"email":{"ok":false,"reason":"invalid_format","message":"Please enter a valid email address"}}}`))
	}))
	defer srv.Close()

	err := NewHTTPSubmitter(srv.URL).Submit(context.Background(), Snapshot{})
	var rej *RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want *RejectedError", err)
	}
	if rej.Status != http.StatusUnprocessableEntity || rej.Code != "validation_failed" {
		t.Errorf("rejection = %+v", rej)
	}
	if r, ok := rej.Fields["email"]; !ok || r.Reason != ReasonInvalidFormat {
		t.Errorf("fields = %+v", rej.Fields)
	}
}

func TestHTTPSubmitter_DrivesFormFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f, ps, _ := newTestForm(t, NewHTTPSubmitter(srv.URL))
	fill(f, validValues)
	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error from 500 response")
	}
	if ps.Failure() == "" {
		t.Error("failure notice not shown")
	}
}

func TestHTTPSubmitter_RejectedBodyUnreadable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "512")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":`))
	}))
	defer srv.Close()

	err := NewHTTPSubmitter(srv.URL).Submit(context.Background(), Snapshot{})
	var rej *RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want *RejectedError", err)
	}
	if rej.Status != http.StatusBadGateway || rej.Err == nil {
		t.Errorf("rejection = %+v", rej)
	}
	if rej.Code != "" {
		t.Errorf("code decoded from a truncated body: %q", rej.Code)
	}
}
