package storekit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storekit"
	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/cart"
)

func testConfig(t *testing.T, backendURL string) storekit.Config {
	t.Helper()
	dir := t.TempDir()
	return storekit.Config{
		API:         apiclient.Config{BaseURL: backendURL, Timeout: 5 * time.Second},
		StateFile:   filepath.Join(dir, "state.json"),
		CartKey:     "cart",
		UndoWindow:  4 * time.Second,
		ComuniFile:  filepath.Join(dir, "missing-comuni.json"),
		CountryFile: filepath.Join(dir, "missing-countries.json"),
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/local", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jwt": "tok-123", "user": {"id": 7, "username": "mario", "email": "mario@example.com"}}`))
	})
	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id": 7, "username": "mario", "email": "mario@example.com", "name": "Mario"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAppWiring(t *testing.T) {
	t.Parallel()

	t.Run("two apps are independent", func(t *testing.T) {
		t.Parallel()
		srv := newBackend(t)

		a, err := storekit.New(testConfig(t, srv.URL))
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.Close() })

		b, err := storekit.New(testConfig(t, srv.URL))
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })

		a.Cart.AddItem(cart.Item{ID: "p1", Name: "Spatola", Price: decimal.NewFromInt(16), Stock: cart.StockUnknown}, 1)
		assert.Equal(t, 1, a.Cart.TotalItems())
		assert.Zero(t, b.Cart.TotalItems())

		a.Search.Set("resina")
		assert.Empty(t, b.Search.Query())
	})

	t.Run("auth token flows into api requests", func(t *testing.T) {
		t.Parallel()
		srv := newBackend(t)

		app, err := storekit.New(testConfig(t, srv.URL))
		require.NoError(t, err)
		t.Cleanup(func() { _ = app.Close() })

		require.True(t, app.Auth.Login(context.Background(), "mario@example.com", "secret", true))
		require.NoError(t, app.Auth.FetchUser(context.Background()))
		assert.Equal(t, "Mario", app.Auth.User().Name)
	})

	t.Run("init is non-fatal and reports skipped steps", func(t *testing.T) {
		t.Parallel()
		srv := newBackend(t)

		app, err := storekit.New(testConfig(t, srv.URL))
		require.NoError(t, err)
		t.Cleanup(func() { _ = app.Close() })

		// Geo datasets are missing in this fixture; cart and auth
		// hydrate from empty storage without error.
		err = app.Init(context.Background())
		require.Error(t, err)
		assert.Zero(t, app.Cart.TotalItems())
		assert.Nil(t, app.Auth.User())
	})

	t.Run("cart state survives a restart through the state file", func(t *testing.T) {
		t.Parallel()
		srv := newBackend(t)
		cfg := testConfig(t, srv.URL)

		first, err := storekit.New(cfg)
		require.NoError(t, err)
		first.Cart.AddItem(cart.Item{ID: "p1", Name: "Spatola", Price: decimal.NewFromInt(16), Stock: cart.StockUnknown}, 2)
		require.NoError(t, first.Close())

		second, err := storekit.New(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = second.Close() })

		require.NoError(t, second.Cart.Restore(context.Background()))
		assert.Equal(t, 2, second.Cart.TotalItems())
	})
}
