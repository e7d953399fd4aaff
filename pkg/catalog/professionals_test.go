package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/catalog"
)

func TestProfessionalsFetch(t *testing.T) {
	t.Parallel()

	t.Run("expands relations and maps display names", func(t *testing.T) {
		t.Parallel()
		var gotQuery url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			_, _ = w.Write([]byte(`{
				"data": [
					{"id": 1, "documentId": "pro-a", "name": "Studio Rossi", "city": "Milano",
					 "profilePhoto": {"url": "/uploads/rossi.jpg"},
					 "gallery": [{"url": "/uploads/g1.jpg"}, {"url": ""}],
					 "skills": [{"id": 9, "name": "Resina", "slug": "resina"}],
					 "user": {"username": "rossi", "email": "rossi@example.com"}},
					{"id": 2, "city": "Torino",
					 "user": {"username": "bianchi", "email": "bianchi@example.com"}},
					{"id": 3, "city": "Bari"}
				],
				"meta": {"pagination": {"page": 2, "pageSize": 10, "pageCount": 4, "total": 31}}
			}`))
		}))
		t.Cleanup(srv.Close)

		client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
		require.NoError(t, err)

		svc := catalog.NewProfessionals(client)
		extra := url.Values{"filters[city][$eq]": {"Milano"}}
		require.NoError(t, svc.Fetch(context.Background(), 2, 10, extra))

		assert.Equal(t, "user", gotQuery.Get("populate[0]"))
		assert.Equal(t, "skills", gotQuery.Get("populate[1]"))
		assert.Equal(t, "profilePhoto", gotQuery.Get("populate[2]"))
		assert.Equal(t, "gallery", gotQuery.Get("populate[3]"))
		assert.Equal(t, "2", gotQuery.Get("pagination[page]"))
		assert.Equal(t, "10", gotQuery.Get("pagination[pageSize]"))
		assert.Equal(t, "Milano", gotQuery.Get("filters[city][$eq]"))

		items := svc.Items()
		require.Len(t, items, 3)
		assert.Equal(t, "Studio Rossi", items[0].Name, "explicit name wins")
		assert.Equal(t, "bianchi", items[1].Name, "username fallback")
		assert.Equal(t, "Professionista", items[2].Name, "generic fallback")

		require.Len(t, items[0].Gallery, 1, "empty media refs dropped")
		require.Len(t, items[0].Skills, 1)
		assert.Equal(t, "resina", items[0].Skills[0].Slug)

		page := svc.Page()
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 31, page.Total, "pagination replaced from response metadata")
	})

	t.Run("failure records italian message and keeps state", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
		require.NoError(t, err)

		svc := catalog.NewProfessionals(client)
		require.Error(t, svc.Fetch(context.Background(), 1, 25, nil))

		assert.Equal(t, "Impossibile caricare i professionisti.", svc.Err())
		assert.Empty(t, svc.Items())
		assert.Equal(t, 1, svc.Page().Page, "default pagination untouched")
	})
}
