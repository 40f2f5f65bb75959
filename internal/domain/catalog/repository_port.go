// internal/domain/catalog/repository_port.go
package catalog

import "context"

// Repository is a read-only query port over the catalog collections.
//
// Storage design (Firestore):
// - Items/{itemId}, Category/{id}, Banner/{id}
//
// One-shot queries deliver exactly once and terminate. Watch* methods are
// live subscriptions: they re-deliver the full current set on every remote
// change, and close the channel when ctx is cancelled or the subscription
// fails. Undecodable records are dropped, never bubbled up.
type Repository interface {
	Banners(ctx context.Context) ([]Banner, error)
	WatchBanners(ctx context.Context) (<-chan []Banner, error)

	Categories(ctx context.Context) ([]Category, error)
	WatchCategories(ctx context.Context) (<-chan []Category, error)

	// Popular is the one-shot showRecommended == true query.
	Popular(ctx context.Context) ([]Item, error)

	// ByCategory is a one-shot equality query on categoryId. Each call
	// returns its own independent slice; concurrent outstanding calls are
	// safe.
	ByCategory(ctx context.Context, categoryID string) ([]Item, error)

	// ItemByID returns (nil, nil) when the item does not exist.
	ItemByID(ctx context.Context, itemID string) (*Item, error)

	// AllItems is the full-scan backing title search.
	AllItems(ctx context.Context) ([]Item, error)
}
