// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for cart lines.
//
// Storage design (Firestore):
// - carts/{userId}/lines/{productId}-{model}
// - line doc fields: productId, model, quantity, price, imageUrl, title
//
// Every mutation targets a single line document; there is no cart-level
// transaction. Concurrent writers racing on the same line interleave
// arbitrarily (last remote write wins).
type Repository interface {
	// GetLine returns (nil, nil) when the line does not exist.
	GetLine(ctx context.Context, userID, lineKey string) (*Item, error)

	// PutLine creates or fully overwrites a line.
	PutLine(ctx context.Context, userID string, it Item) error

	// UpdateQuantity sets only the quantity field of an existing line.
	UpdateQuantity(ctx context.Context, userID, lineKey string, quantity int) error

	// DeleteLine removes a line. Deleting an absent line is a no-op.
	DeleteLine(ctx context.Context, userID, lineKey string) error

	// ListLines returns all decodable lines for the user, in arrival order.
	// Lines missing a productId are dropped, not surfaced.
	ListLines(ctx context.Context, userID string) ([]Item, error)

	// DeleteAll removes every line for the user.
	DeleteAll(ctx context.Context, userID string) error
}
