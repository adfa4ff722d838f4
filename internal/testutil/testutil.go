// Package testutil holds helpers shared by the application's tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/TAPAN-2835/Business-Website/internal/app/resources"
	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
	"github.com/TAPAN-2835/Business-Website/internal/site"
	"github.com/TAPAN-2835/Business-Website/templates"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger returns a no-op logger.
func Logger() *zap.Logger {
	return zap.NewNop()
}

// ObservedLogger returns a logger that records entries at debug and above.
func ObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// Context returns a context cancelled when the test ends or after 30s.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TempFile writes content to name inside a fresh temp dir.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

// Eventually polls check until it passes or timeout elapses.
func Eventually(t *testing.T, check func() bool, timeout, interval time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(interval)
	}
	t.Fatal("condition not met within timeout")
}

// Site returns the built-in site content.
func Site(t *testing.T) *site.Site {
	t.Helper()
	s, err := site.Default()
	if err != nil {
		t.Fatalf("load site: %v", err)
	}
	return s
}

// Engine boots the shared layout plus sets.
func Engine(t *testing.T, sets ...templates.Set) *templates.Engine {
	t.Helper()
	e := templates.New(Logger(), nil)
	if err := e.Boot(resources.Shared, sets...); err != nil {
		t.Fatalf("boot templates: %v", err)
	}
	return e
}

// Notifier records every message it is asked to send and fails with Err
// when set.
type Notifier struct {
	mu   sync.Mutex
	Err  error
	sent []models.ContactMessage
}

// NotifyContact records msg and returns n.Err.
func (n *Notifier) NotifyContact(_ context.Context, msg models.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.Err
}

// Sent returns the recorded messages.
func (n *Notifier) Sent() []models.ContactMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.ContactMessage, len(n.sent))
	copy(out, n.sent)
	return out
}
