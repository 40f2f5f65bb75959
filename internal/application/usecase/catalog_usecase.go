// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"strings"

	catalogdom "onlineshop/internal/domain/catalog"
)

// Catalog is the query layer over banners, categories and items.
// It adds title search on top of the repository's one-shot and live queries.
type Catalog struct {
	repo catalogdom.Repository
}

func NewCatalog(repo catalogdom.Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) Banners(ctx context.Context) ([]catalogdom.Banner, error) {
	return c.repo.Banners(ctx)
}

func (c *Catalog) WatchBanners(ctx context.Context) (<-chan []catalogdom.Banner, error) {
	return c.repo.WatchBanners(ctx)
}

func (c *Catalog) Categories(ctx context.Context) ([]catalogdom.Category, error) {
	return c.repo.Categories(ctx)
}

func (c *Catalog) WatchCategories(ctx context.Context) (<-chan []catalogdom.Category, error) {
	return c.repo.WatchCategories(ctx)
}

func (c *Catalog) Popular(ctx context.Context) ([]catalogdom.Item, error) {
	return c.repo.Popular(ctx)
}

// ByCategory returns its own result slice per call; two concurrent calls
// for different ids do not share state.
func (c *Catalog) ByCategory(ctx context.Context, categoryID string) ([]catalogdom.Item, error) {
	id := strings.TrimSpace(categoryID)
	if id == "" {
		return nil, ErrInvalidArgument
	}
	return c.repo.ByCategory(ctx, id)
}

// ItemByID returns (nil, nil) when the item does not exist.
func (c *Catalog) ItemByID(ctx context.Context, itemID string) (*catalogdom.Item, error) {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return nil, ErrInvalidArgument
	}
	return c.repo.ItemByID(ctx, id)
}

// SearchByTitle filters the full item set by case-insensitive substring
// match on the title. An empty query returns no results.
func (c *Catalog) SearchByTitle(ctx context.Context, query string) ([]catalogdom.Item, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []catalogdom.Item{}, nil
	}

	items, err := c.repo.AllItems(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]catalogdom.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), q) {
			out = append(out, it)
		}
	}
	return out, nil
}
