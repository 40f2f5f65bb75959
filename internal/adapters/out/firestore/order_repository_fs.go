// internal/adapters/out/firestore/order_repository_fs.go
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

	orderdom "onlineshop/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - Orders/{userId}/orders/{orderId}
// - one document per order, written atomically at creation
// - items stored as a nested map keyed by generated item ids
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col(userID string) *firestore.CollectionRef {
	return r.Client.Collection("Orders").Doc(userID).Collection("orders")
}

// NewOrderID mints a fresh document id without writing anything.
func (r *OrderRepositoryFS) NewOrderID(userID string) string {
	if r == nil || r.Client == nil {
		return ""
	}
	return r.col(strings.TrimSpace(userID)).NewDoc().ID
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	if strings.TrimSpace(o.ID) == "" || strings.TrimSpace(o.UserID) == "" {
		return errors.New("order_repository_fs: order id and userId are required")
	}

	_, err := r.col(o.UserID).Doc(o.ID).Set(ctx, orderDocFromDomain(o))
	return err
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *OrderRepositoryFS) GetByID(ctx context.Context, userID, orderID string) (*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	oid := strings.TrimSpace(orderID)
	if uid == "" || oid == "" {
		return nil, errors.New("order_repository_fs: userID and orderID are required")
	}

	snap, err := r.col(uid).Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	o, ok := orderFromData(uid, snap.Data())
	if !ok {
		log.Printf("[order_repository_fs] WARN: undecodable order user=%q id=%q", uid, oid)
		return nil, nil
	}
	return &o, nil
}

// UpdateStatus merges only the status field.
func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, userID, orderID string, st orderdom.Status) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	oid := strings.TrimSpace(orderID)
	if uid == "" || oid == "" {
		return errors.New("order_repository_fs: userID and orderID are required")
	}

	_, err := r.col(uid).Doc(oid).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(st)},
	})
	return err
}

func (r *OrderRepositoryFS) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order_repository_fs: userID is empty")
	}

	iter := r.col(uid).Documents(ctx)
	defer iter.Stop()

	out := []orderdom.Order{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		o, ok := orderFromData(uid, doc.Data())
		if !ok {
			log.Printf("[order_repository_fs] WARN: dropping undecodable order user=%q doc=%q", uid, doc.Ref.ID)
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// WatchByUser re-delivers the full current order set on every remote change.
// The goroutine owns the snapshot iterator and exits, closing the channel,
// when ctx is cancelled or the subscription fails.
func (r *OrderRepositoryFS) WatchByUser(ctx context.Context, userID string) (<-chan []orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order_repository_fs: userID is empty")
	}

	snaps := r.col(uid).Snapshots(ctx)
	out := make(chan []orderdom.Order, 1)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("[order_repository_fs] watch ended user=%q err=%v", uid, err)
				}
				return
			}

			orders := []orderdom.Order{}
			docs := qs.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("[order_repository_fs] watch iterate failed user=%q err=%v", uid, err)
					return
				}
				if o, ok := orderFromData(uid, doc.Data()); ok {
					orders = append(orders, o)
				}
			}

			select {
			case out <- orders:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// ============================================================
// mappers
// ============================================================

func orderDocFromDomain(o orderdom.Order) map[string]any {
	items := make(map[string]any, len(o.Items))
	for k, it := range o.Items {
		items[k] = map[string]any{
			"productId": it.ProductID,
			"model":     it.Model,
			"quantity":  it.Quantity,
			"price":     it.Price,
			"imageUrl":  it.ImageURL,
			"title":     it.Title,
		}
	}
	return map[string]any{
		"orderId":       o.ID,
		"userId":        o.UserID,
		"timestamp":     o.Timestamp,
		"status":        string(o.Status),
		"totalPrice":    o.TotalPrice,
		"address":       o.Address,
		"phone":         o.Phone,
		"paymentMethod": string(o.PaymentMethod),
		"items":         items,
	}
}

// orderFromData parses a stored order defensively: a record without an
// orderId is undecodable; item entries that are not maps are skipped.
func orderFromData(userID string, data map[string]any) (orderdom.Order, bool) {
	oid := asString(data["orderId"])
	if strings.TrimSpace(oid) == "" {
		return orderdom.Order{}, false
	}

	items := map[string]orderdom.ItemSnapshot{}
	if raw, ok := data["items"].(map[string]any); ok {
		for k, v := range raw {
			entry, ok := v.(map[string]any)
			if !ok {
				continue
			}
			items[k] = orderdom.ItemSnapshot{
				ProductID: asString(entry["productId"]),
				Model:     asString(entry["model"]),
				Quantity:  asInt(entry["quantity"]),
				Price:     asFloat(entry["price"]),
				ImageURL:  asString(entry["imageUrl"]),
				Title:     asString(entry["title"]),
			}
		}
	}

	st := orderdom.Status(asString(data["status"]))
	if !st.Valid() {
		st = orderdom.StatusPending
	}
	pm := orderdom.PaymentMethod(asString(data["paymentMethod"]))
	if !pm.Valid() {
		pm = orderdom.PaymentCash
	}

	return orderdom.Order{
		ID:            oid,
		UserID:        userID,
		Timestamp:     int64(asFloat(data["timestamp"])),
		Status:        st,
		TotalPrice:    asFloat(data["totalPrice"]),
		Address:       asString(data["address"]),
		Phone:         asString(data["phone"]),
		PaymentMethod: pm,
		Items:         items,
	}, true
}
