// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	cartdom "onlineshop/internal/domain/cart"
)

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID            = errors.New("order: invalid id")
	ErrInvalidUserID        = errors.New("order: invalid userId")
	ErrInvalidTimestamp     = errors.New("order: invalid timestamp")
	ErrInvalidStatus        = errors.New("order: invalid status")
	ErrInvalidTotalPrice    = errors.New("order: invalid totalPrice")
	ErrInvalidPayment       = errors.New("order: invalid paymentMethod")
	ErrInvalidItems         = errors.New("order: invalid items")
	ErrInvalidItemSnapshot  = errors.New("order: invalid item snapshot")
	ErrCancelWindowClosed   = errors.New("order: cancel window closed")
	ErrIllegalTransition    = errors.New("order: illegal status transition")
)

// ========================================
// Policy
// ========================================

// CancelWindow is how long after placement a cancellation is still accepted.
// Measured against the order's creation timestamp (86,400,000 ms).
const CancelWindow = 24 * time.Hour

var MinItemsRequired = 1

// ========================================
// Payment method
// ========================================

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

// ========================================
// Entity
// ========================================

// ItemSnapshot is a frozen copy of one cart line at order time.
// Price and quantity are immutable thereafter, decoupled from any later
// cart or catalog change.
type ItemSnapshot struct {
	ProductID string  `json:"productId" firestore:"productId"`
	Model     string  `json:"model" firestore:"model"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	Price     float64 `json:"price" firestore:"price"`
	ImageURL  string  `json:"imageUrl" firestore:"imageUrl"`
	Title     string  `json:"title" firestore:"title"`
}

// Order is immutable once created except for Status.
//   - ID is server-generated, unique per user.
//   - Timestamp is the creation instant in milliseconds since epoch.
//   - Items maps generated item keys (not product keys) to frozen snapshots,
//     so duplicate-looking entries stay representable.
type Order struct {
	ID            string        `json:"orderId"`
	UserID        string        `json:"userId"`
	Timestamp     int64         `json:"timestamp"`
	Status        Status        `json:"status"`
	TotalPrice    float64       `json:"totalPrice"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`

	Items map[string]ItemSnapshot `json:"items"`
}

// SnapshotLine freezes one cart line into an order item snapshot.
func SnapshotLine(it cartdom.Item) ItemSnapshot {
	return ItemSnapshot{
		ProductID: it.ProductID,
		Model:     it.Model,
		Quantity:  it.Quantity,
		Price:     it.Price,
		ImageURL:  it.ImageURL,
		Title:     it.Title,
	}
}

// New creates a Pending order record from frozen item snapshots.
func New(
	id string,
	userID string,
	items map[string]ItemSnapshot,
	totalPrice float64,
	address string,
	phone string,
	payment PaymentMethod,
	now time.Time,
) (Order, error) {
	if payment == "" {
		payment = PaymentCash
	}
	o := Order{
		ID:            strings.TrimSpace(id),
		UserID:        strings.TrimSpace(userID),
		Timestamp:     now.UnixMilli(),
		Status:        StatusPending,
		TotalPrice:    totalPrice,
		Address:       strings.TrimSpace(address),
		Phone:         strings.TrimSpace(phone),
		PaymentMethod: payment,
		Items:         cloneSnapshots(items),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// PlacedAt converts the millisecond timestamp back to a time.Time.
func (o Order) PlacedAt() time.Time {
	return time.UnixMilli(o.Timestamp)
}

// Cancellable reports whether the order is still inside the cancel window.
//
// Deliberately checks only elapsed time, not the current status: a Shipped
// order inside the window still passes. Callers wanting the stricter rule
// combine this with Status.CanTransition(StatusCancelled).
func (o Order) Cancellable(now time.Time) bool {
	return now.Sub(o.PlacedAt()) <= CancelWindow
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if o.Timestamp <= 0 {
		return ErrInvalidTimestamp
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if o.TotalPrice < 0 {
		return ErrInvalidTotalPrice
	}
	if !o.PaymentMethod.Valid() {
		return ErrInvalidPayment
	}
	if len(o.Items) < MinItemsRequired {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return ErrInvalidItemSnapshot
		}
		if it.Quantity <= 0 {
			return ErrInvalidItemSnapshot
		}
		if it.Price < 0 {
			return ErrInvalidItemSnapshot
		}
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func cloneSnapshots(src map[string]ItemSnapshot) map[string]ItemSnapshot {
	out := make(map[string]ItemSnapshot, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
