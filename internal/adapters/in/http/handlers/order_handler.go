// internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"onlineshop/internal/adapters/in/http/middleware"
	uc "onlineshop/internal/application/usecase"
	cartdom "onlineshop/internal/domain/cart"
	orderdom "onlineshop/internal/domain/order"
)

// OrderHandler serves /orders: placement, listing, cancellation, and a
// server-sent-events stream of the caller's order list.
type OrderHandler struct {
	orders *uc.OrderService
}

func NewOrderHandler(orders *uc.OrderService) http.Handler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, uc.ErrNotAuthenticated)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/orders":
		h.create(w, r, uid)
	case r.Method == http.MethodGet && r.URL.Path == "/orders":
		h.list(w, r, uid)
	case r.Method == http.MethodGet && r.URL.Path == "/orders/stream":
		h.stream(w, r, uid)
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/orders/") && strings.HasSuffix(r.URL.Path, "/cancel"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/orders/"), "/cancel")
		h.cancel(w, r, uid, id)
	default:
		notFound(w)
	}
}

// POST /orders
func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request, uid string) {
	var body struct {
		Items         []cartdom.Item `json:"items"`
		TotalPrice    float64        `json:"totalPrice"`
		Address       string         `json:"address"`
		Phone         string         `json:"phone"`
		PaymentMethod string         `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}

	id, err := h.orders.Create(r.Context(), uid, uc.CreateInput{
		Items:         body.Items,
		TotalPrice:    body.TotalPrice,
		Address:       strings.TrimSpace(body.Address),
		Phone:         strings.TrimSpace(body.Phone),
		PaymentMethod: orderdom.PaymentMethod(strings.TrimSpace(body.PaymentMethod)),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"orderId": id})
}

// GET /orders
func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request, uid string) {
	orders, err := h.orders.List(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// POST /orders/{id}/cancel
func (h *OrderHandler) cancel(w http.ResponseWriter, r *http.Request, uid, orderID string) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}
	if err := h.orders.Cancel(r.Context(), uid, orderID); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// GET /orders/stream
// Pushes the full newest-first order list on every store change until the
// client disconnects.
func (h *OrderHandler) stream(w http.ResponseWriter, r *http.Request, uid string) {
	updates, err := h.orders.Watch(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}

	send, ok := sseWriter(w)
	if !ok {
		return
	}
	for orders := range updates {
		if err := send(orders); err != nil {
			return
		}
	}
}
