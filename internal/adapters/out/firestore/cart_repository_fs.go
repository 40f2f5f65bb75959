// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "onlineshop/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - carts/{userId}/lines/{productId}-{model}
// - line doc fields: productId, model, quantity, price, imageUrl, title
//
// The line docId mirrors the domain line key, so every mutation is a single
// document write with no cart-level read-modify-write.
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) lines(userID string) *firestore.CollectionRef {
	return r.Client.Collection("carts").Doc(userID).Collection("lines")
}

// GetLine returns (nil, nil) if not found (nil policy).
func (r *CartRepositoryFS) GetLine(ctx context.Context, userID, lineKey string) (*cartdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}

	snap, err := r.lines(uid).Doc(lineKey).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	it, ok := lineFromData(snap.Data())
	if !ok {
		// undecodable line behaves like an absent one
		log.Printf("[cart_repository_fs] WARN: dropping undecodable line user=%q key=%q", uid, lineKey)
		return nil, nil
	}
	return &it, nil
}

func (r *CartRepositoryFS) PutLine(ctx context.Context, userID string, it cartdom.Item) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_repository_fs: userID is empty")
	}
	if err := it.Validate(); err != nil {
		return err
	}

	_, err := r.lines(uid).Doc(it.Key()).Set(ctx, map[string]any{
		"productId": it.ProductID,
		"model":     it.Model,
		"quantity":  it.Quantity,
		"price":     it.Price,
		"imageUrl":  it.ImageURL,
		"title":     it.Title,
	})
	return err
}

// UpdateQuantity merges only the quantity field, creating the path when the
// line document is absent (remote-store merge semantics).
func (r *CartRepositoryFS) UpdateQuantity(ctx context.Context, userID, lineKey string, quantity int) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_repository_fs: userID is empty")
	}

	_, err := r.lines(uid).Doc(lineKey).Set(ctx, map[string]any{
		"quantity": quantity,
	}, firestore.MergeAll)
	return err
}

// DeleteLine is idempotent: deleting an absent line succeeds.
func (r *CartRepositoryFS) DeleteLine(ctx context.Context, userID, lineKey string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_repository_fs: userID is empty")
	}

	_, err := r.lines(uid).Doc(lineKey).Delete(ctx)
	return err
}

func (r *CartRepositoryFS) ListLines(ctx context.Context, userID string) ([]cartdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}

	iter := r.lines(uid).Documents(ctx)
	defer iter.Stop()

	out := []cartdom.Item{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		it, ok := lineFromData(doc.Data())
		if !ok {
			log.Printf("[cart_repository_fs] WARN: dropping line without productId user=%q doc=%q", uid, doc.Ref.ID)
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *CartRepositoryFS) DeleteAll(ctx context.Context, userID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_repository_fs: userID is empty")
	}

	iter := r.lines(uid).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return err
		}
	}
}

// lineFromData parses a line document defensively. A missing productId makes
// the record undecodable; numeric fields accept both int64 and float64
// encodings. Absent quantity defaults to 1 (a stored line is at least one
// unit).
func lineFromData(data map[string]any) (cartdom.Item, bool) {
	pid := asString(data["productId"])
	if strings.TrimSpace(pid) == "" {
		return cartdom.Item{}, false
	}

	qty := asInt(data["quantity"])
	if qty == 0 {
		qty = 1
	}

	return cartdom.Item{
		ProductID: pid,
		Model:     asString(data["model"]),
		Quantity:  qty,
		Price:     asFloat(data["price"]),
		ImageURL:  asString(data["imageUrl"]),
		Title:     asString(data["title"]),
	}, true
}
