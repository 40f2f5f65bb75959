// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"strings"
	"sync"

	cartdom "onlineshop/internal/domain/cart"
)

// CartStore coordinates cart mutations against the remote store and keeps a
// per-user in-memory mirror of the last fetched snapshot.
//
// Consistency model (deliberate, inherited from the storefront design):
//   - every mutation targets the remote store only; the mirror is refreshed
//     wholesale by GetCart, never incrementally by the mutators
//   - callers re-invoke GetCart after a mutation to observe the effect
//   - TotalPrice is computed over the mirror, so it reflects the last fetch
//
// The mirror is guarded by an RWMutex; callbacks from the store client may
// arrive on arbitrary goroutines.
type CartStore struct {
	repo cartdom.Repository

	mu     sync.RWMutex
	mirror map[string][]cartdom.Item
}

func NewCartStore(repo cartdom.Repository) *CartStore {
	return &CartStore{
		repo:   repo,
		mirror: make(map[string][]cartdom.Item),
	}
}

// AddInput carries the denormalized display fields captured at add time.
type AddInput struct {
	ProductID     string
	Model         string
	Price         float64
	QuantityDelta int
	ImageURL      string
	Title         string
}

// AddToCart merges a quantity delta into the (productId, model) line.
//   - absent line + positive delta: create with quantity = delta
//   - present line: newQty = current + delta; update when > 0, delete when <= 0
//   - absent line + non-positive delta: no-op
//
// The same entry point therefore serves both "add" and
// "decrement-to-zero-removes"; UpdateQuantity is the normal path for plain
// quantity edits.
func (s *CartStore) AddToCart(ctx context.Context, userID string, in AddInput) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrNotAuthenticated
	}
	pid := strings.TrimSpace(in.ProductID)
	if pid == "" {
		return ErrInvalidArgument
	}

	key := cartdom.LineKey(pid, in.Model)

	line, err := s.repo.GetLine(ctx, uid, key)
	if err != nil {
		return err
	}

	if line == nil {
		if in.QuantityDelta <= 0 {
			return nil
		}
		return s.repo.PutLine(ctx, uid, cartdom.Item{
			ProductID: pid,
			Model:     in.Model,
			Quantity:  in.QuantityDelta,
			Price:     in.Price,
			ImageURL:  in.ImageURL,
			Title:     in.Title,
		})
	}

	newQty := line.Quantity + in.QuantityDelta
	if newQty > 0 {
		return s.repo.UpdateQuantity(ctx, uid, key, newQty)
	}
	return s.repo.DeleteLine(ctx, uid, key)
}

// UpdateQuantity unconditionally sets the quantity at the line.
// Quantities below 1 are refused (policy: "minimum 1 item").
func (s *CartStore) UpdateQuantity(ctx context.Context, userID, productID, model string, quantity int) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrNotAuthenticated
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidArgument
	}
	if quantity < 1 {
		return ErrMinQuantity
	}
	return s.repo.UpdateQuantity(ctx, uid, cartdom.LineKey(pid, model), quantity)
}

// RemoveFromCart deletes the line. Removing an absent line is a no-op.
func (s *CartStore) RemoveFromCart(ctx context.Context, userID, productID, model string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrNotAuthenticated
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidArgument
	}
	return s.repo.DeleteLine(ctx, uid, cartdom.LineKey(pid, model))
}

// GetCart fetches the full line set for the user and replaces the mirror
// with it. Lines missing a productId were already dropped by the repository.
func (s *CartStore) GetCart(ctx context.Context, userID string) ([]cartdom.Item, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrNotAuthenticated
	}

	items, err := s.repo.ListLines(ctx, uid)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.mirror[uid] = cartdom.CloneItems(items)
	s.mu.Unlock()

	return items, nil
}

// ClearCart deletes all lines for the user and empties the mirror.
func (s *CartStore) ClearCart(ctx context.Context, userID string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrNotAuthenticated
	}
	if err := s.repo.DeleteAll(ctx, uid); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.mirror, uid)
	s.mu.Unlock()
	return nil
}

// TotalPrice sums price x quantity over the mirrored lines for the user.
// An unknown or empty cart totals 0.
func (s *CartStore) TotalPrice(userID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartdom.Total(s.mirror[strings.TrimSpace(userID)])
}
