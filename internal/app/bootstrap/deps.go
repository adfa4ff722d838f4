package bootstrap

import (
	"github.com/TAPAN-2835/Business-Website/internal/app/notify"
	"github.com/TAPAN-2835/Business-Website/internal/app/store"
	"github.com/TAPAN-2835/Business-Website/internal/site"
)

// Deps holds the backends opened by ConnectDB.
type Deps struct {
	Site     *site.Site
	Messages store.Messages
	Notifier notify.Notifier
	// SQLite is set when messages are stored on disk; EnsureSchema uses it.
	SQLite *store.SQLite
}
