// Package auth holds the authentication session: the bearer token and a
// best-effort up-to-date user profile. One Manager is shared process-wide so
// navigation guards, the API client and UI surfaces all observe the same
// live credential.
//
// The token is persisted through a kvstore.Scoped pair: "remember me" picks
// the durable scope, anything else the session scope; writing one scope
// purges the other and logout clears both. Auth operations never panic or
// leak transport errors to callers; they return a success flag and publish
// a translated, user-facing message through Err.
//
//	manager := auth.New(client, scoped)
//	if !manager.Login(ctx, email, password, true) {
//	    render(manager.Err())
//	}
package auth
