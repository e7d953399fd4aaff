package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/auth"
	"github.com/dmitrymomot/storekit/pkg/kvstore"
)

// backend is a minimal fake of the commerce API's auth surface.
type backend struct {
	failLogin       atomic.Bool
	failProfile     atomic.Bool
	lastAuthHeader  atomic.Value
	lastContentType atomic.Value
	registerCalls   atomic.Int32
	updateCalls     atomic.Int32
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/local", func(w http.ResponseWriter, r *http.Request) {
		if b.failLogin.Load() {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Invalid identifier or password"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"jwt":"tok-abc","user":{"id":7,"username":"mario","email":"mario@example.com"}}`))
	})

	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		b.lastAuthHeader.Store(r.Header.Get("Authorization"))
		if b.failProfile.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"username":"mario","email":"mario@example.com","name":"Mario","surname":"Rossi","confirmed":true,"role":{"name":"Admin","type":"admin"}}`))
	})

	mux.HandleFunc("POST /api/auth/custom-register", func(w http.ResponseWriter, r *http.Request) {
		b.registerCalls.Add(1)
		b.lastContentType.Store(r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	mux.HandleFunc("PUT /api/users/7", func(w http.ResponseWriter, r *http.Request) {
		b.updateCalls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	})

	return mux
}

type fixture struct {
	backend *backend
	server  *httptest.Server
	manager *auth.Manager
	durable *kvstore.MemoryStore
	session *kvstore.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	b := &backend{}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	var mgr *auth.Manager
	client, err := apiclient.New(
		apiclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second},
		apiclient.WithTokenSource(func(ctx context.Context) string {
			if mgr == nil {
				return ""
			}
			return mgr.Token()
		}),
	)
	require.NoError(t, err)

	durable := kvstore.NewMemoryStore()
	session := kvstore.NewMemoryStore()
	mgr = auth.New(client, kvstore.NewScoped(durable, session))

	return &fixture{backend: b, server: srv, manager: mgr, durable: durable, session: session}
}

func TestManager_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("remember places token in durable scope only", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		require.True(t, f.manager.Login(ctx, "mario@example.com", "secret", true))

		tok, err := f.durable.Get(ctx, "auth_token")
		require.NoError(t, err)
		assert.Equal(t, "tok-abc", tok)

		_, err = f.session.Get(ctx, "auth_token")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)

		assert.Equal(t, "tok-abc", f.manager.Token())
	})

	t.Run("without remember token goes to session scope only", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		require.True(t, f.manager.Login(ctx, "mario@example.com", "secret", false))

		tok, err := f.session.Get(ctx, "auth_token")
		require.NoError(t, err)
		assert.Equal(t, "tok-abc", tok)

		_, err = f.durable.Get(ctx, "auth_token")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("full profile fetched with fresh token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		require.True(t, f.manager.Login(ctx, "mario@example.com", "secret", true))

		user := f.manager.User()
		require.NotNil(t, user)
		assert.Equal(t, "Mario", user.Name)
		assert.True(t, f.manager.IsAdmin())

		// The profile request went out with the just-issued bearer token.
		assert.Equal(t, "Bearer tok-abc", f.backend.lastAuthHeader.Load())
	})

	t.Run("failed profile fetch falls back to minimal user", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.backend.failProfile.Store(true)

		require.True(t, f.manager.Login(ctx, "mario@example.com", "secret", true))

		user := f.manager.User()
		require.NotNil(t, user)
		assert.Equal(t, "mario", user.Username)
		assert.Empty(t, user.Name) // minimal shape, no expanded fields
		assert.False(t, f.manager.IsAdmin())
	})

	t.Run("bad credentials return false with translated message", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.backend.failLogin.Store(true)

		assert.False(t, f.manager.Login(ctx, "mario@example.com", "wrong", true))
		assert.Equal(t, "Email o password non corretti.", f.manager.Err())
		assert.Empty(t, f.manager.Token())
		assert.Nil(t, f.manager.User())
	})

	t.Run("unreachable backend returns false with generic message", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.server.Close()

		assert.False(t, f.manager.Login(ctx, "mario@example.com", "secret", true))
		assert.Equal(t, "Si è verificato un errore sconosciuto.", f.manager.Err())
	})
}

func TestManager_Logout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	f := newFixture(t)
	require.True(t, f.manager.Login(ctx, "mario@example.com", "secret", true))

	f.manager.Logout(ctx)

	assert.Empty(t, f.manager.Token())
	assert.Nil(t, f.manager.User())

	for _, store := range []*kvstore.MemoryStore{f.durable, f.session} {
		for _, key := range []string{"auth_token", "auth_user"} {
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
		}
	}
}

func TestManager_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("plain registration goes out as json", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ok := f.manager.Register(ctx, auth.Registration{
			Name:     "Mario",
			Surname:  "Rossi",
			Email:    "mario@example.com",
			Password: "secret",
			Phone:    "+39 333 1234567",
		})
		require.True(t, ok)

		assert.Equal(t, "application/json", f.backend.lastContentType.Load())
		// No session is established before email confirmation.
		assert.Empty(t, f.manager.Token())
		assert.Nil(t, f.manager.User())
	})

	t.Run("professional with files switches to multipart", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		photo := apiclient.FormFile{Name: "me.jpg", Content: strings.NewReader("jpg")}
		ok := f.manager.Register(ctx, auth.Registration{
			Name:           "Mario",
			Email:          "mario@example.com",
			Password:       "secret",
			IsProfessional: true,
			Skills:         []auth.Skill{{Slug: "resina"}},
			ProfilePhoto:   &photo,
			Gallery: []apiclient.FormFile{
				{Name: "work1.jpg", Content: strings.NewReader("a")},
			},
		})
		require.True(t, ok)

		ct, _ := f.backend.lastContentType.Load().(string)
		assert.True(t, strings.HasPrefix(ct, "multipart/form-data"), "got content type %q", ct)
	})

	t.Run("professional without files stays json", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ok := f.manager.Register(ctx, auth.Registration{
			Email:          "mario@example.com",
			Password:       "secret",
			IsProfessional: true,
		})
		require.True(t, ok)
		assert.Equal(t, "application/json", f.backend.lastContentType.Load())
	})
}

func TestManager_UpdateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("patch then refetch", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		require.True(t, f.manager.Login(ctx, "mario@example.com", "secret", true))

		require.True(t, f.manager.UpdateUser(ctx, map[string]any{"phone": "+39 333 7654321"}))
		assert.Equal(t, int32(1), f.backend.updateCalls.Load())
	})

	t.Run("no cached user", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		assert.False(t, f.manager.UpdateUser(ctx, map[string]any{"phone": "x"}))
	})
}

func TestManager_InitAuth(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("hydrates from durable scope and refreshes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		require.NoError(t, f.durable.Set(ctx, "auth_token", "tok-abc"))
		snapshot, _ := json.Marshal(auth.User{ID: 7, Username: "stale-name"})
		require.NoError(t, f.durable.Set(ctx, "auth_user", string(snapshot)))

		f.manager.InitAuth(ctx)

		assert.Equal(t, "tok-abc", f.manager.Token())
		user := f.manager.User()
		require.NotNil(t, user)
		// Background refresh replaced the stale snapshot.
		assert.Equal(t, "mario", user.Username)
	})

	t.Run("keeps snapshot when refresh fails", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.backend.failProfile.Store(true)
		require.NoError(t, f.session.Set(ctx, "auth_token", "tok-abc"))
		snapshot, _ := json.Marshal(auth.User{ID: 7, Username: "cached"})
		require.NoError(t, f.session.Set(ctx, "auth_user", string(snapshot)))

		f.manager.InitAuth(ctx)

		assert.Equal(t, "tok-abc", f.manager.Token())
		user := f.manager.User()
		require.NotNil(t, user)
		assert.Equal(t, "cached", user.Username)
	})

	t.Run("no stored token leaves state untouched", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.manager.InitAuth(ctx)
		assert.Empty(t, f.manager.Token())
		assert.Nil(t, f.manager.User())
	})
}
