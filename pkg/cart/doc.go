// Package cart maintains the authoritative client-side representation of the
// items a user intends to purchase. It enforces the stock-awareness rules
// (a known stock ceiling is never exceeded; violations are rejected with a
// user-facing notice, not clamped), keeps line items in insertion order
// keyed by product ID, and offers a time-boxed single-use undo for removals.
//
// Derived totals are always recomputed from the current items, never cached.
// All invariant violations are non-fatal: they surface through the
// configured notify.Notifier and leave state unchanged.
//
//	c := cart.New(
//	    cart.WithNotifier(hub),
//	    cart.WithStorage(scoped, "cart"),
//	)
//	_ = c.Restore(ctx)
//	c.AddItem(cart.Item{ID: "42", Name: "Resina", Price: price, Stock: 5}, 1)
package cart
