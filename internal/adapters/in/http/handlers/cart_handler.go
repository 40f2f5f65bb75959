// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"onlineshop/internal/adapters/in/http/middleware"
	uc "onlineshop/internal/application/usecase"
)

// CartHandler serves the /cart endpoints. The owning uid always comes from
// the verified token, never from the request body.
type CartHandler struct {
	cart *uc.CartStore
}

func NewCartHandler(cart *uc.CartStore) http.Handler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, uc.ErrNotAuthenticated)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/cart":
		h.get(w, r, uid)
	case r.Method == http.MethodGet && r.URL.Path == "/cart/total":
		h.total(w, uid)
	case r.Method == http.MethodDelete && r.URL.Path == "/cart":
		h.clear(w, r, uid)
	case r.URL.Path == "/cart/items":
		switch r.Method {
		case http.MethodPost:
			h.add(w, r, uid)
		case http.MethodPatch:
			h.updateQuantity(w, r, uid)
		case http.MethodDelete:
			h.remove(w, r, uid)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

// GET /cart
// Refreshes the caller's lines from the store and returns them with the
// running total.
func (h *CartHandler) get(w http.ResponseWriter, r *http.Request, uid string) {
	items, err := h.cart.GetCart(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": h.cart.TotalPrice(uid),
	})
}

// GET /cart/total
// Total over the lines loaded by the last GET /cart. Does not hit the store.
func (h *CartHandler) total(w http.ResponseWriter, uid string) {
	writeJSON(w, http.StatusOK, map[string]float64{"total": h.cart.TotalPrice(uid)})
}

// POST /cart/items
func (h *CartHandler) add(w http.ResponseWriter, r *http.Request, uid string) {
	var body struct {
		ProductID     string  `json:"productId"`
		Model         string  `json:"model"`
		Price         float64 `json:"price"`
		QuantityDelta int     `json:"quantityDelta"`
		ImageURL      string  `json:"imageUrl"`
		Title         string  `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}
	if body.QuantityDelta == 0 {
		body.QuantityDelta = 1
	}

	err := h.cart.AddToCart(r.Context(), uid, uc.AddInput{
		ProductID:     strings.TrimSpace(body.ProductID),
		Model:         strings.TrimSpace(body.Model),
		Price:         body.Price,
		QuantityDelta: body.QuantityDelta,
		ImageURL:      strings.TrimSpace(body.ImageURL),
		Title:         strings.TrimSpace(body.Title),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PATCH /cart/items
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request, uid string) {
	var body struct {
		ProductID string `json:"productId"`
		Model     string `json:"model"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}

	err := h.cart.UpdateQuantity(r.Context(), uid, strings.TrimSpace(body.ProductID), strings.TrimSpace(body.Model), body.Quantity)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DELETE /cart/items?productId=...&model=...
func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request, uid string) {
	q := r.URL.Query()
	productID := strings.TrimSpace(q.Get("productId"))
	model := strings.TrimSpace(q.Get("model"))
	if productID == "" {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}

	if err := h.cart.RemoveFromCart(r.Context(), uid, productID, model); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DELETE /cart
func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request, uid string) {
	if err := h.cart.ClearCart(r.Context(), uid); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
