// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"context"
	"net/http"
	"strings"

	uc "onlineshop/internal/application/usecase"
)

// CatalogHandler serves the public /catalog endpoints. No auth: the catalog
// is readable before sign-in.
type CatalogHandler struct {
	catalog *uc.Catalog
}

func NewCatalogHandler(catalog *uc.Catalog) http.Handler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	switch {
	case r.URL.Path == "/catalog/banners":
		h.collect(w, r, func() (any, error) { return h.catalog.Banners(r.Context()) })
	case r.URL.Path == "/catalog/banners/stream":
		streamUpdates(w, r, h.catalog.WatchBanners)
	case r.URL.Path == "/catalog/categories":
		h.collect(w, r, func() (any, error) { return h.catalog.Categories(r.Context()) })
	case r.URL.Path == "/catalog/categories/stream":
		streamUpdates(w, r, h.catalog.WatchCategories)
	case r.URL.Path == "/catalog/popular":
		h.collect(w, r, func() (any, error) { return h.catalog.Popular(r.Context()) })
	case r.URL.Path == "/catalog/items":
		h.byCategory(w, r)
	case r.URL.Path == "/catalog/search":
		h.search(w, r)
	case strings.HasPrefix(r.URL.Path, "/catalog/items/"):
		h.itemByID(w, r, strings.TrimPrefix(r.URL.Path, "/catalog/items/"))
	default:
		notFound(w)
	}
}

func (h *CatalogHandler) collect(w http.ResponseWriter, _ *http.Request, load func() (any, error)) {
	data, err := load()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GET /catalog/items?categoryId=...
func (h *CatalogHandler) byCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(r.URL.Query().Get("categoryId"))
	if categoryID == "" {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}
	items, err := h.catalog.ByCategory(r.Context(), categoryID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /catalog/items/{id}
func (h *CatalogHandler) itemByID(w http.ResponseWriter, r *http.Request, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}
	item, err := h.catalog.ItemByID(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	if item == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// GET /catalog/search?q=...
// Empty queries return an empty list, not the whole catalog.
func (h *CatalogHandler) search(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.SearchByTitle(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// streamUpdates bridges a watch channel onto an SSE response. The channel is
// closed by the repository when the request context ends.
func streamUpdates[T any](w http.ResponseWriter, r *http.Request, watch func(ctx context.Context) (<-chan []T, error)) {
	updates, err := watch(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	send, ok := sseWriter(w)
	if !ok {
		return
	}
	for batch := range updates {
		if err := send(batch); err != nil {
			return
		}
	}
}
