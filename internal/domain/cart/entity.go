// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
)

var (
	ErrInvalidLine = errors.New("cart: invalid line")
)

// Item represents one line in a user's cart.
//
// Price, imageUrl and title are denormalized display fields captured at
// add time. They must never be re-derived from the live catalog: the cart
// reflects the price the user saw when the line was added.
type Item struct {
	ProductID string  `json:"productId" firestore:"productId"`
	Model     string  `json:"model" firestore:"model"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	Price     float64 `json:"price" firestore:"price"`
	ImageURL  string  `json:"imageUrl" firestore:"imageUrl"`
	Title     string  `json:"title" firestore:"title"`
}

// LineKey builds the unique key for a (productId, model) line.
// The model can be empty ("{productId}-"); the key shape is kept stable
// because it doubles as the remote document id.
func LineKey(productID, model string) string {
	return productID + "-" + model
}

// Key returns the line's unique key within one user's cart.
func (it Item) Key() string {
	return LineKey(it.ProductID, it.Model)
}

// Validate checks the invariants a stored line must satisfy.
// Lines with an empty productId are undecodable and must be dropped by
// the reader (defensive decoding), not surfaced as an error to callers.
func (it Item) Validate() error {
	if strings.TrimSpace(it.ProductID) == "" {
		return ErrInvalidLine
	}
	if it.Quantity < 1 {
		return ErrInvalidLine
	}
	if it.Price < 0 {
		return ErrInvalidLine
	}
	return nil
}

// Subtotal is price x quantity for this line.
func (it Item) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

// Total sums price x quantity over all lines. Empty carts total 0.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

// CloneItems returns an independent copy of items so later mutation of the
// source slice cannot leak into a stored snapshot.
func CloneItems(src []Item) []Item {
	if len(src) == 0 {
		return []Item{}
	}
	out := make([]Item, len(src))
	copy(out, src)
	return out
}
