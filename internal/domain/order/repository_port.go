// internal/domain/order/repository_port.go
package order

import "context"

// Repository is a persistence port for orders.
//
// Storage design (Firestore):
// - Orders/{userId}/orders/{orderId}
// - the order record is written as one atomic document
//
// Orders are never deleted; the only mutation after creation is the
// status field.
type Repository interface {
	// NewOrderID returns a fresh server-generated order id for the user.
	NewOrderID(userID string) string

	// Create writes the full order record. Fails if the write is rejected.
	Create(ctx context.Context, o Order) error

	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, userID, orderID string) (*Order, error)

	// UpdateStatus sets only the status field.
	UpdateStatus(ctx context.Context, userID, orderID string, st Status) error

	// ListByUser returns all decodable orders for the user (unsorted;
	// callers order them). Undecodable records are dropped.
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// WatchByUser opens a live subscription that re-delivers the full
	// current order set on every remote change. The channel closes when
	// ctx is cancelled or the subscription fails.
	WatchByUser(ctx context.Context, userID string) (<-chan []Order, error)
}
