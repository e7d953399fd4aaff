package cart

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/storekit/pkg/kvstore"
	"github.com/dmitrymomot/storekit/pkg/notify"
)

// Option configures a Cart.
type Option func(*Cart)

// WithNotifier routes user-facing notices (added, limit reached, removal
// undo) to the given notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Cart) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithUndoWindow overrides the removal undo window. Values below or equal to
// zero are ignored.
func WithUndoWindow(d time.Duration) Option {
	return func(c *Cart) {
		if d > 0 {
			c.undoWindow = d
		}
	}
}

// WithStorage persists the cart under key in the durable scope after every
// mutation. Call Restore to load the persisted state on startup.
func WithStorage(store *kvstore.Scoped, key string) Option {
	return func(c *Cart) {
		if store != nil && key != "" {
			c.storage = store
			c.storageKey = key
		}
	}
}

// WithLogger sets the logger for the cart.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cart) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithClock replaces the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}
