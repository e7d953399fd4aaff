package kvstore

import (
	"context"
	"errors"
)

// Scoped pairs a durable store with a session-only store and enforces the
// mutual-exclusion invariant: a key lives in at most one scope. Writing a
// key to one scope removes the sibling's copy in the same call.
type Scoped struct {
	durable Store
	session Store
}

// NewScoped creates a scoped store pair. Both stores are required.
func NewScoped(durable, session Store) *Scoped {
	if durable == nil || session == nil {
		panic("kvstore: scoped store requires both a durable and a session store")
	}
	return &Scoped{durable: durable, session: session}
}

// Set writes the value under key into the chosen scope and purges the key
// from the sibling scope.
func (s *Scoped) Set(ctx context.Context, scope Scope, key, value string) error {
	target, sibling, err := s.pick(scope)
	if err != nil {
		return err
	}
	if err := target.Set(ctx, key, value); err != nil {
		return err
	}
	return sibling.Delete(ctx, key)
}

// Get returns the value and the scope that holds it. The durable scope is
// checked first, matching load-time token resolution.
func (s *Scoped) Get(ctx context.Context, key string) (string, Scope, error) {
	val, err := s.durable.Get(ctx, key)
	if err == nil {
		return val, ScopeDurable, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return "", "", err
	}

	val, err = s.session.Get(ctx, key)
	if err == nil {
		return val, ScopeSession, nil
	}
	return "", "", err
}

// GetFrom reads the key from one specific scope.
func (s *Scoped) GetFrom(ctx context.Context, scope Scope, key string) (string, error) {
	target, _, err := s.pick(scope)
	if err != nil {
		return "", err
	}
	return target.Get(ctx, key)
}

// Clear removes the listed keys from both scopes.
func (s *Scoped) Clear(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := s.durable.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
		if err := s.session.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Scoped) pick(scope Scope) (target, sibling Store, err error) {
	switch scope {
	case ScopeDurable:
		return s.durable, s.session, nil
	case ScopeSession:
		return s.session, s.durable, nil
	default:
		return nil, nil, ErrInvalidScope
	}
}
