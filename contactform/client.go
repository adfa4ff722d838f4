package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the path of the JSON submission endpoint.
const DefaultEndpoint = "/api/contact"

// RejectedError is returned by HTTPSubmitter when the backend answers with
// a non-2xx status.
type RejectedError struct {
	Status  int
	Code    string
	Message string
	// Fields carries per-field results when the backend re-ran validation.
	Fields map[string]Result
	// Err is set when the response body could not be read.
	Err error
}

func (e *RejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("contactform: backend rejected submission (%d): %v", e.Status, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("contactform: backend rejected submission (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("contactform: backend rejected submission (%d)", e.Status)
}

// HTTPSubmitter posts the snapshot as JSON to a backend endpoint.
type HTTPSubmitter struct {
	URL    string
	Client *http.Client
	// UserAgent defaults to "bizsite-contactform/1.0".
	UserAgent string
}

// NewHTTPSubmitter returns a submitter with a client timeout of 30s.
func NewHTTPSubmitter(url string) *HTTPSubmitter {
	return &HTTPSubmitter{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *RejectedError) Unwrap() error { return e.Err }

// Submit sends s and interprets the response: 2xx is success, anything
// else becomes a *RejectedError.
func (h *HTTPSubmitter) Submit(ctx context.Context, s Snapshot) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("contactform: marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contactform: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	ua := h.UserAgent
	if ua == "" {
		ua = "bizsite-contactform/1.0"
	}
	req.Header.Set("User-Agent", ua)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("contactform: post %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil
	}

	rej := &RejectedError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		rej.Err = fmt.Errorf("read response: %w", err)
		return rej
	}
	var envelope struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Fields  map[string]Result `json:"fields"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		rej.Code = envelope.Error
		rej.Message = envelope.Message
		rej.Fields = envelope.Fields
	}
	return rej
}
