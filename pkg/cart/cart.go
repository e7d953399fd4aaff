package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storekit/pkg/kvstore"
	"github.com/dmitrymomot/storekit/pkg/notify"
)

const defaultUndoWindow = 4 * time.Second

// pendingRemoval records a removed line so it can be restored at its
// original position. consumed guards against double-reinsertion: undo is
// valid exactly once, and only before expiresAt.
type pendingRemoval struct {
	item      Item
	index     int
	expiresAt time.Time
	consumed  bool
	timer     *time.Timer
}

// Cart is an insertion-ordered collection of line items keyed by product ID.
// It is safe for concurrent use. The open/closed flag is UI state that rides
// along with the cart but carries no business meaning.
type Cart struct {
	mu         sync.Mutex
	items      []Item
	open       bool
	pending    *pendingRemoval
	notifier   notify.Notifier
	undoWindow time.Duration
	now        func() time.Time
	storage    *kvstore.Scoped
	storageKey string
	logger     *slog.Logger
}

// New creates an empty cart.
func New(opts ...Option) *Cart {
	c := &Cart{
		notifier:   notify.Discard{},
		undoWindow: defaultUndoWindow,
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddItem merges the product into the cart. A quantity below one is treated
// as one. The add is rejected, with a "limit reached" notice and no state
// change, when a known stock ceiling would be exceeded. On success the
// stored ceiling is refreshed from the incoming item and a success notice
// with a "view cart" action is emitted. The cart panel is not opened.
func (c *Cart) AddItem(item Item, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	if idx := c.indexOf(item.ID); idx >= 0 {
		existing := &c.items[idx]
		ceiling := existing.Stock
		if item.hasStock() {
			ceiling = item.Stock
		}
		if ceiling >= 0 && existing.Quantity+quantity > ceiling {
			c.mu.Unlock()
			c.notifyLimit(item.Name)
			return false
		}
		existing.Quantity += quantity
		if item.hasStock() {
			existing.Stock = item.Stock
		}
	} else {
		if item.hasStock() && quantity > item.Stock {
			c.mu.Unlock()
			c.notifyLimit(item.Name)
			return false
		}
		item.Quantity = quantity
		c.items = append(c.items, item)
	}
	c.persistLocked()
	c.mu.Unlock()

	c.notifier.Notify(notify.Success(
		"Prodotto aggiunto al carrello",
		fmt.Sprintf("%s (x%d)", item.Name, quantity),
		notify.Action{Label: "Vedi Carrello", Command: "cart.open"},
	))
	return true
}

// RemoveItem removes the line with the given ID and opens a single-use undo
// window. A previous pending removal, if any, becomes permanent. Returns
// false when the ID is not in the cart.
func (c *Cart) RemoveItem(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(id)
}

// UndoRemove restores the most recently removed item at its original index.
// It is a no-op after the undo window expires or once it has been used.
func (c *Cart) UndoRemove() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pending
	if p == nil || p.consumed || c.now().After(p.expiresAt) {
		return false
	}
	p.consumed = true
	if p.timer != nil {
		p.timer.Stop()
	}
	c.pending = nil

	idx := p.index
	if idx > len(c.items) {
		idx = len(c.items)
	}
	c.items = append(c.items[:idx], append([]Item{p.item}, c.items[idx:]...)...)
	c.persistLocked()
	return true
}

// UpdateQuantity adds delta (positive or negative) to the line's quantity.
// Exceeding a known stock ceiling rejects the change with a notice. A
// resulting quantity of zero or below removes the line through the regular
// removal path, undo included.
func (c *Cart) UpdateQuantity(id string, delta int) bool {
	c.mu.Lock()

	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		c.logger.Debug("quantity update for unknown cart line", slog.String("product_id", id))
		return false
	}

	item := &c.items[idx]
	next := item.Quantity + delta
	if next <= 0 {
		removed := c.removeLocked(id)
		c.mu.Unlock()
		return removed
	}
	if item.hasStock() && next > item.Stock {
		name := item.Name
		c.mu.Unlock()
		c.notifyLimit(name)
		return false
	}
	item.Quantity = next
	c.persistLocked()
	c.mu.Unlock()
	return true
}

// Clear empties the cart unconditionally. No undo: a pending removal is
// discarded as well.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		if c.pending.timer != nil {
			c.pending.timer.Stop()
		}
		c.pending = nil
	}
	c.items = nil
	c.persistLocked()
}

// Toggle flips the open/closed visibility flag.
func (c *Cart) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
}

// Open opens the cart panel. Wired to the "cart.open" notification action.
func (c *Cart) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
}

// IsOpen reports the visibility flag.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems returns the sum of quantities, recomputed from current items.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity, recomputed from
// current items.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Restore loads the persisted cart state. Missing state is not an error.
func (c *Cart) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.storage == nil {
		return nil
	}
	raw, _, err := c.storage.Get(ctx, c.storageKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return err
	}
	c.items = items
	return nil
}

// Close releases the pending-removal timer, committing any removal still in
// flight.
func (c *Cart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		if c.pending.timer != nil {
			c.pending.timer.Stop()
		}
		c.pending = nil
	}
}

// removeLocked removes the line and arms the undo window. Callers must hold
// the mutex.
func (c *Cart) removeLocked(id string) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}

	// Only one removal is undoable at a time: an earlier pending removal
	// becomes permanent when a new one replaces it.
	if c.pending != nil && c.pending.timer != nil {
		c.pending.timer.Stop()
	}

	p := &pendingRemoval{
		item:      c.items[idx],
		index:     idx,
		expiresAt: c.now().Add(c.undoWindow),
	}
	p.timer = time.AfterFunc(c.undoWindow, func() { c.commitRemoval(p) })
	c.pending = p

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.persistLocked()
	return true
}

// commitRemoval makes the removal permanent once the undo window elapses.
func (c *Cart) commitRemoval(p *pendingRemoval) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == p {
		c.pending = nil
	}
}

func (c *Cart) indexOf(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) notifyLimit(name string) {
	c.notifier.Notify(notify.Warning(
		"Quantità non disponibile",
		fmt.Sprintf("%s: disponibilità massima raggiunta", name),
	))
}

// persistTimeout bounds the snapshot write so a slow durable backend
// cannot stall cart operations, which run with the mutex held.
const persistTimeout = 2 * time.Second

// persistLocked serialises the items into the durable scope. Persistence is
// best effort: failures are logged and never surface to the caller. Callers
// must hold the mutex.
func (c *Cart) persistLocked() {
	if c.storage == nil {
		return
	}
	data, err := json.Marshal(c.items)
	if err != nil {
		c.logger.Warn("failed to serialize cart state", slog.Any("error", err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := c.storage.Set(ctx, kvstore.ScopeDurable, c.storageKey, string(data)); err != nil {
		c.logger.Warn("failed to persist cart state", slog.Any("error", err))
	}
}
