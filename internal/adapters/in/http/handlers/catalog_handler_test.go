// internal/adapters/in/http/handlers/catalog_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uc "onlineshop/internal/application/usecase"
	catalogdom "onlineshop/internal/domain/catalog"
)

func newCatalogHandlerForTest() http.Handler {
	repo := &fakeCatalogRepo{
		banners:    []catalogdom.Banner{{URL: "https://cdn.example.com/b1.jpg"}},
		categories: []catalogdom.Category{{ID: "c1", Title: "Shoes"}, {ID: "c2", Title: "Shirts"}},
		items: []catalogdom.Item{
			{ID: "i1", Title: "Red Shirt", CategoryID: "c2", Price: 10, ShowRecommended: true},
			{ID: "i2", Title: "Blue Shirt", CategoryID: "c2", Price: 12},
			{ID: "i3", Title: "Running Shoe", CategoryID: "c1", Price: 40, ShowRecommended: true},
		},
	}
	return NewCatalogHandler(uc.NewCatalog(repo))
}

func getCatalog(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestCatalogHandlerOneShots(t *testing.T) {
	h := newCatalogHandlerForTest()

	t.Run("banners", func(t *testing.T) {
		w := getCatalog(t, h, "/catalog/banners")
		require.Equal(t, http.StatusOK, w.Code)
		var banners []catalogdom.Banner
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &banners))
		assert.Len(t, banners, 1)
	})

	t.Run("categories", func(t *testing.T) {
		w := getCatalog(t, h, "/catalog/categories")
		require.Equal(t, http.StatusOK, w.Code)
		var cats []catalogdom.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
		assert.Len(t, cats, 2)
	})

	t.Run("popular", func(t *testing.T) {
		w := getCatalog(t, h, "/catalog/popular")
		require.Equal(t, http.StatusOK, w.Code)
		var items []catalogdom.Item
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		assert.Len(t, items, 2)
	})

	t.Run("by category", func(t *testing.T) {
		w := getCatalog(t, h, "/catalog/items?categoryId=c2")
		require.Equal(t, http.StatusOK, w.Code)
		var items []catalogdom.Item
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		assert.Len(t, items, 2)
	})

	t.Run("by category missing id", func(t *testing.T) {
		w := getCatalog(t, h, "/catalog/items")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("item by id", func(t *testing.T) {
		w := getCatalog(t, h, "/catalog/items/i1")
		require.Equal(t, http.StatusOK, w.Code)
		var item catalogdom.Item
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, "Red Shirt", item.Title)
	})

	t.Run("item by id absent", func(t *testing.T) {
		w := getCatalog(t, h, "/catalog/items/zzz")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCatalogHandlerSearch(t *testing.T) {
	h := newCatalogHandlerForTest()

	w := getCatalog(t, h, "/catalog/search?q=shirt")
	require.Equal(t, http.StatusOK, w.Code)
	var items []catalogdom.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2, "substring match is case-insensitive")

	w = getCatalog(t, h, "/catalog/search?q=")
	require.Equal(t, http.StatusOK, w.Code)
	items = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Empty(t, items, "empty query returns nothing, not everything")
}

func TestCatalogHandlerStream(t *testing.T) {
	h := newCatalogHandlerForTest()

	ctx, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest(http.MethodGet, "/catalog/banners/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, r)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "b1.jpg")
}

func TestCatalogHandlerMethodAndRoute(t *testing.T) {
	h := newCatalogHandlerForTest()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/catalog/banners", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = getCatalog(t, h, "/catalog/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
