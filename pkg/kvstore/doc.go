// Package kvstore provides the persistence layer for client state: a small
// key/value Store interface with memory, file and redis implementations, and
// a Scoped wrapper that pairs a durable store with a session-only one.
//
// The two scopes mirror the browser's localStorage/sessionStorage split.
// Exactly one scope is authoritative for a given key at a time: writing a
// key into one scope removes it from the other, so a stale copy can never
// shadow the fresh one on the next load.
//
//	scoped := kvstore.NewScoped(durable, session)
//	_ = scoped.Set(ctx, kvstore.ScopeDurable, "auth_token", token) // purges session copy
//	val, scope, err := scoped.Get(ctx, "auth_token")               // durable checked first
//	_ = scoped.Clear(ctx, "auth_token", "auth_user")               // both scopes
package kvstore
