package catalog_test

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
	"github.com/dmitrymomot/storekit/pkg/catalog"
)

type productsBackend struct {
	failList        atomic.Bool
	listCalls       atomic.Int32
	lastContentType atomic.Value
	lastWriteBody   atomic.Value
}

func (b *productsBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		b.listCalls.Add(1)
		if b.failList.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"data": [
				{
					"id": 1,
					"documentId": "doc-abc",
					"name": "Sika MonoTop",
					"subtitle": "Malta",
					"sku": "SKU-1",
					"price": 24.5,
					"stock": 7,
					"description": "Malta monocomponente",
					"images": [{"url": "/uploads/front.png"}, {"url": "/uploads/back.png"}],
					"technical_sheet": {"url": "/uploads/sheet.pdf"},
					"category": {"slug": "edilizia", "name": "Edilizia"}
				},
				{
					"id": 2,
					"name": "Spatola",
					"price": 16,
					"stock": 0,
					"image": {"url": "https://cdn.example.com/spatola.png"}
				}
			],
			"meta": {"pagination": {"page": 1, "pageSize": 25, "pageCount": 1, "total": 2}}
		}`))
	})
	mux.HandleFunc("POST /api/products", func(w http.ResponseWriter, r *http.Request) {
		b.recordWrite(r)
		_, _ = w.Write([]byte(`{"data": {"id": 3}}`))
	})
	mux.HandleFunc("PUT /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.recordWrite(r)
		_, _ = w.Write([]byte(`{"data": {"id": 1}}`))
	})
	mux.HandleFunc("DELETE /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": null}`))
	})
	return mux
}

func (b *productsBackend) recordWrite(r *http.Request) {
	b.lastContentType.Store(r.Header.Get("Content-Type"))
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		b.lastWriteBody.Store(r.FormValue("data"))
		return
	}
	var raw map[string]json.RawMessage
	_ = json.NewDecoder(r.Body).Decode(&raw)
	b.lastWriteBody.Store(string(raw["data"]))
}

func newProductsFixture(t *testing.T) (*catalog.Products, *productsBackend) {
	t.Helper()
	backend := &productsBackend{}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return catalog.NewProducts(client), backend
}

func TestProductsFetch(t *testing.T) {
	t.Parallel()

	t.Run("maps documents to view models", func(t *testing.T) {
		t.Parallel()
		svc, _ := newProductsFixture(t)
		require.NoError(t, svc.Fetch(context.Background()))

		items := svc.Items()
		require.Len(t, items, 2)

		first := items[0]
		assert.Equal(t, "doc-abc", first.ID)
		assert.Equal(t, "24.5", first.Price.String())
		assert.Equal(t, "Disponibile (7 pz)", first.Availability)
		assert.Equal(t, "Pz", first.Unit)
		assert.True(t, strings.HasSuffix(first.Image, "/uploads/front.png"), first.Image)
		require.Len(t, first.Documents, 1)
		assert.Equal(t, "Scheda Tecnica", first.Documents[0].Name)
		require.NotNil(t, first.Category)
		assert.Equal(t, "edilizia", first.Category.Slug)

		second := items[1]
		assert.Equal(t, "2", second.ID, "numeric id fallback")
		assert.Equal(t, "Esaurito", second.Availability)
		assert.Equal(t, "https://cdn.example.com/spatola.png", second.Image, "absolute media refs pass through")
		assert.Nil(t, second.Category)
		assert.Empty(t, second.Documents)
	})

	t.Run("failure keeps previous items and records error", func(t *testing.T) {
		t.Parallel()
		svc, backend := newProductsFixture(t)
		require.NoError(t, svc.Fetch(context.Background()))
		require.Len(t, svc.Items(), 2)

		backend.failList.Store(true)
		require.Error(t, svc.Fetch(context.Background()))

		assert.Len(t, svc.Items(), 2, "stale data survives a failed fetch")
		assert.Contains(t, svc.Err(), "boom")

		backend.failList.Store(false)
		require.NoError(t, svc.Fetch(context.Background()))
		assert.Empty(t, svc.Err(), "error cleared on success")
	})
}

func TestProductsWrites(t *testing.T) {
	t.Parallel()

	input := catalog.ProductInput{
		Name:  "Nuovo prodotto",
		Stock: 3,
		SKU:   "SKU-9",
	}

	t.Run("create without file posts json and refetches", func(t *testing.T) {
		t.Parallel()
		svc, backend := newProductsFixture(t)

		require.True(t, svc.Create(context.Background(), input))

		ct, _ := backend.lastContentType.Load().(string)
		assert.Equal(t, "application/json", ct)
		data, _ := backend.lastWriteBody.Load().(string)
		assert.Contains(t, data, `"availability":"Disponibile"`)
		assert.Equal(t, int32(1), backend.listCalls.Load(), "list refreshed after write")
		assert.Len(t, svc.Items(), 2)
	})

	t.Run("create with file switches to multipart", func(t *testing.T) {
		t.Parallel()
		svc, backend := newProductsFixture(t)

		in := input
		in.Image = &apiclient.FormFile{Name: "front.png", Content: strings.NewReader("png-bytes")}
		require.True(t, svc.Create(context.Background(), in))

		ct, _ := backend.lastContentType.Load().(string)
		assert.True(t, strings.HasPrefix(ct, "multipart/form-data"), ct)
		data, _ := backend.lastWriteBody.Load().(string)
		assert.Contains(t, data, `"name":"Nuovo prodotto"`)
	})

	t.Run("update derives availability from stock", func(t *testing.T) {
		t.Parallel()
		svc, backend := newProductsFixture(t)

		in := input
		in.Stock = 0
		require.True(t, svc.Update(context.Background(), "doc-abc", in))

		data, _ := backend.lastWriteBody.Load().(string)
		assert.Contains(t, data, `"availability":"Esaurito"`)
	})

	t.Run("delete refetches the list", func(t *testing.T) {
		t.Parallel()
		svc, backend := newProductsFixture(t)

		require.True(t, svc.Delete(context.Background(), "doc-abc"))
		assert.Equal(t, int32(1), backend.listCalls.Load())
	})
}
