// Package notify carries user-facing notices (toasts) emitted by storekit
// components. The cart and auth stores report non-fatal events through a
// Notifier ("product added", "stock limit reached", translated auth
// failures) and the UI decides how to render them.
//
// Hub is the in-process implementation: it keeps a bounded history for
// late-mounting UI surfaces and fans out new notices to subscribers without
// ever blocking the emitting store.
package notify
