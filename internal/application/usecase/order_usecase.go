// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	cartdom "onlineshop/internal/domain/cart"
	orderdom "onlineshop/internal/domain/order"
	userdom "onlineshop/internal/domain/user"
)

// Mailer sends the best-effort order confirmation. Implementations must not
// block order creation; failures are logged and swallowed.
type Mailer interface {
	SendOrderConfirmation(to string, o orderdom.Order) error
}

// OrderService creates immutable order records from cart snapshots and
// enforces the cancellation time-window rule.
type OrderService struct {
	repo  orderdom.Repository
	users userdom.Repository // optional, for the confirmation email address
	mail  Mailer             // optional
	clock Clock
}

func NewOrderService(repo orderdom.Repository, users userdom.Repository, mail Mailer) *OrderService {
	return &OrderService{
		repo:  repo,
		users: users,
		mail:  mail,
		clock: systemClock{},
	}
}

// NewOrderServiceWithClock is useful for tests.
func NewOrderServiceWithClock(repo orderdom.Repository, users userdom.Repository, mail Mailer, clock Clock) *OrderService {
	if clock == nil {
		clock = systemClock{}
	}
	return &OrderService{repo: repo, users: users, mail: mail, clock: clock}
}

// CreateInput is the checkout confirmation payload.
type CreateInput struct {
	Items         []cartdom.Item
	TotalPrice    float64
	Address       string
	Phone         string
	PaymentMethod orderdom.PaymentMethod
}

// Create generates a fresh orderId, freezes the provided cart lines into the
// order's items map under fresh generated keys, and writes one atomic record
// with status Pending. Returns the new id, or an error when the user is
// unauthenticated or the write fails. No retries.
func (s *OrderService) Create(ctx context.Context, userID string, in CreateInput) (string, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return "", ErrNotAuthenticated
	}

	items := make(map[string]orderdom.ItemSnapshot, len(in.Items))
	for _, line := range in.Items {
		// re-keyed with a generated key, not the product key, so
		// duplicate-looking entries stay representable
		items[uuid.NewString()] = orderdom.SnapshotLine(line)
	}

	orderID := s.repo.NewOrderID(uid)
	o, err := orderdom.New(orderID, uid, items, in.TotalPrice, in.Address, in.Phone, in.PaymentMethod, s.clock.Now())
	if err != nil {
		return "", err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return "", err
	}

	s.notify(o)
	return orderID, nil
}

// Cancel flips the order to Cancelled when it is still inside the 24h window.
// Outside the window it returns orderdom.ErrCancelWindowClosed and leaves the
// status unchanged.
//
// The window is the only gate: current status is not re-checked before the
// flip, matching the storefront's observed behavior.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrNotAuthenticated
	}
	oid := strings.TrimSpace(orderID)
	if oid == "" {
		return ErrInvalidArgument
	}

	o, err := s.repo.GetByID(ctx, uid, oid)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrNotFound
	}

	if !o.Cancellable(s.clock.Now()) {
		return orderdom.ErrCancelWindowClosed
	}

	return s.repo.UpdateStatus(ctx, uid, oid, orderdom.StatusCancelled)
}

// List returns the user's orders, newest first.
func (s *OrderService) List(ctx context.Context, userID string) ([]orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrNotAuthenticated
	}

	orders, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

// Watch opens a live subscription to the user's orders. Every delivery is
// the full current set, re-sorted newest first. The channel closes when ctx
// is cancelled.
func (s *OrderService) Watch(ctx context.Context, userID string) (<-chan []orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrNotAuthenticated
	}

	src, err := s.repo.WatchByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := make(chan []orderdom.Order, 1)
	go func() {
		defer close(out)
		for orders := range src {
			sortNewestFirst(orders)
			select {
			case out <- orders:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// notify sends the confirmation email in the background; order creation has
// already succeeded and must not be affected.
func (s *OrderService) notify(o orderdom.Order) {
	if s.mail == nil || s.users == nil {
		return
	}
	go func() {
		p, err := s.users.GetByUID(context.Background(), o.UserID)
		if err != nil || p == nil || strings.TrimSpace(p.Email) == "" {
			log.Printf("[order_service] WARN: no email for user %q, skipping confirmation", o.UserID)
			return
		}
		if err := s.mail.SendOrderConfirmation(p.Email, o); err != nil {
			log.Printf("[order_service] WARN: confirmation mail failed orderId=%s err=%v", o.ID, err)
		}
	}()
}

func sortNewestFirst(orders []orderdom.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Timestamp > orders[j].Timestamp
	})
}
