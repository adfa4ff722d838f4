// Package store persists accepted contact messages.
package store

import (
	"context"
	"errors"

	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
)

// ErrNotFound is returned when no message has the requested id.
var ErrNotFound = errors.New("store: message not found")

// ErrDuplicateID is returned when Save is given an id that already exists.
var ErrDuplicateID = errors.New("store: duplicate message id")

// Messages is the persistence boundary for contact messages.
type Messages interface {
	Save(ctx context.Context, m models.ContactMessage) error
	Get(ctx context.Context, id string) (models.ContactMessage, error)
	// Recent returns up to limit messages, newest first.
	Recent(ctx context.Context, limit int) ([]models.ContactMessage, error)
	MarkNotified(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}
