// internal/adapters/out/firestore/catalog_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogdom "onlineshop/internal/domain/catalog"
)

// CatalogRepositoryFS implements catalog.Repository using Firestore.
//
// Collection design (read-only from this layer):
// - Items/{itemId}, Category/{id}, Banner/{id}
//
// Items carry their docId as the item id; the stored document does not
// repeat it.
type CatalogRepositoryFS struct {
	Client *firestore.Client
}

func NewCatalogRepositoryFS(client *firestore.Client) *CatalogRepositoryFS {
	return &CatalogRepositoryFS{Client: client}
}

func (r *CatalogRepositoryFS) items() *firestore.CollectionRef {
	return r.Client.Collection("Items")
}

func (r *CatalogRepositoryFS) guard() error {
	if r == nil || r.Client == nil {
		return errors.New("catalog_repository_fs: firestore client is nil")
	}
	return nil
}

func (r *CatalogRepositoryFS) Banners(ctx context.Context) ([]catalogdom.Banner, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	return collectBanners(r.Client.Collection("Banner").Documents(ctx))
}

func (r *CatalogRepositoryFS) WatchBanners(ctx context.Context) (<-chan []catalogdom.Banner, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	return watchCollection(ctx, r.Client.Collection("Banner").Snapshots(ctx), "Banner", collectBanners)
}

func (r *CatalogRepositoryFS) Categories(ctx context.Context) ([]catalogdom.Category, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	return collectCategories(r.Client.Collection("Category").Documents(ctx))
}

func (r *CatalogRepositoryFS) WatchCategories(ctx context.Context) (<-chan []catalogdom.Category, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	return watchCollection(ctx, r.Client.Collection("Category").Snapshots(ctx), "Category", collectCategories)
}

func (r *CatalogRepositoryFS) Popular(ctx context.Context) ([]catalogdom.Item, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	q := r.items().Where("showRecommended", "==", true)
	return collectItems(q.Documents(ctx))
}

// ByCategory builds a fresh query and result slice per call; concurrent
// outstanding calls never share state.
func (r *CatalogRepositoryFS) ByCategory(ctx context.Context, categoryID string) ([]catalogdom.Item, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	q := r.items().Where("categoryId", "==", categoryID)
	return collectItems(q.Documents(ctx))
}

// ItemByID returns (nil, nil) if not found (nil policy).
func (r *CatalogRepositoryFS) ItemByID(ctx context.Context, itemID string) (*catalogdom.Item, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}

	snap, err := r.items().Doc(itemID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var it catalogdom.Item
	if derr := snap.DataTo(&it); derr != nil {
		log.Printf("[catalog_repository_fs] WARN: undecodable item id=%q err=%v", itemID, derr)
		return nil, nil
	}
	it.ID = snap.Ref.ID
	return &it, nil
}

func (r *CatalogRepositoryFS) AllItems(ctx context.Context) ([]catalogdom.Item, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	return collectItems(r.items().Documents(ctx))
}

// ============================================================
// collectors
// ============================================================

func collectItems(iter *firestore.DocumentIterator) ([]catalogdom.Item, error) {
	defer iter.Stop()
	out := []catalogdom.Item{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var it catalogdom.Item
		if derr := doc.DataTo(&it); derr != nil {
			log.Printf("[catalog_repository_fs] WARN: dropping undecodable item doc=%q err=%v", doc.Ref.ID, derr)
			continue
		}
		it.ID = doc.Ref.ID
		out = append(out, it)
	}
}

func collectBanners(iter *firestore.DocumentIterator) ([]catalogdom.Banner, error) {
	defer iter.Stop()
	out := []catalogdom.Banner{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var b catalogdom.Banner
		if derr := doc.DataTo(&b); derr != nil {
			log.Printf("[catalog_repository_fs] WARN: dropping undecodable banner doc=%q err=%v", doc.Ref.ID, derr)
			continue
		}
		out = append(out, b)
	}
}

func collectCategories(iter *firestore.DocumentIterator) ([]catalogdom.Category, error) {
	defer iter.Stop()
	out := []catalogdom.Category{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var c catalogdom.Category
		if derr := doc.DataTo(&c); derr != nil {
			log.Printf("[catalog_repository_fs] WARN: dropping undecodable category doc=%q err=%v", doc.Ref.ID, derr)
			continue
		}
		out = append(out, c)
	}
}

// watchCollection drives one live subscription: every query snapshot is
// re-collected in full and sent downstream. It closes the channel when ctx
// is cancelled or the subscription fails.
func watchCollection[T any](
	ctx context.Context,
	snaps *firestore.QuerySnapshotIterator,
	tag string,
	collect func(*firestore.DocumentIterator) ([]T, error),
) (<-chan []T, error) {
	out := make(chan []T, 1)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("[catalog_repository_fs] watch %s ended err=%v", tag, err)
				}
				return
			}
			set, err := collect(qs.Documents)
			if err != nil {
				log.Printf("[catalog_repository_fs] watch %s iterate failed err=%v", tag, err)
				return
			}
			select {
			case out <- set:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
