// internal/application/usecase/order_usecase_test.go
package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "onlineshop/internal/domain/cart"
	orderdom "onlineshop/internal/domain/order"
	userdom "onlineshop/internal/domain/user"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeOrderRepo is an in-memory order.Repository.
type fakeOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]map[string]orderdom.Order // userID -> orderID -> order
	watch  chan []orderdom.Order
	fail   error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]map[string]orderdom.Order)}
}

func (f *fakeOrderRepo) NewOrderID(string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("order-%d", f.seq)
}

func (f *fakeOrderRepo) Create(_ context.Context, o orderdom.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if f.orders[o.UserID] == nil {
		f.orders[o.UserID] = make(map[string]orderdom.Order)
	}
	f.orders[o.UserID][o.ID] = o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, userID, orderID string) (*orderdom.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	o, ok := f.orders[userID][orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, userID, orderID string, st orderdom.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	o, ok := f.orders[userID][orderID]
	if !ok {
		return fmt.Errorf("fake: order %s not found", orderID)
	}
	o.Status = st
	f.orders[userID][orderID] = o
	return nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]orderdom.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]orderdom.Order, 0, len(f.orders[userID]))
	for _, o := range f.orders[userID] {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) WatchByUser(ctx context.Context, userID string) (<-chan []orderdom.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watch = make(chan []orderdom.Order, 4)
	return f.watch, nil
}

func cartLines() []cartdom.Item {
	return []cartdom.Item{
		{ProductID: "p1", Model: "red", Quantity: 2, Price: 10, Title: "Chair"},
		{ProductID: "p2", Model: "blue", Quantity: 1, Price: 5, Title: "Lamp"},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepo()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc := NewOrderServiceWithClock(repo, nil, nil, fixedClock{now})

	id, err := svc.Create(ctx, "u1", CreateInput{
		Items:         cartLines(),
		TotalPrice:    25,
		Address:       "10 Main St",
		Phone:         "0123456789",
		PaymentMethod: orderdom.PaymentCard,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := repo.GetByID(ctx, "u1", id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, orderdom.StatusPending, stored.Status)
	assert.Equal(t, now.UnixMilli(), stored.Timestamp)
	assert.Len(t, stored.Items, 2)

	// item keys are generated, never the product key
	for k := range stored.Items {
		assert.NotEqual(t, "p1-red", k)
		assert.NotEqual(t, "p2-blue", k)
	}
}

func TestCreateOrderItemsAreFrozen(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, nil)

	lines := cartLines()
	id, err := svc.Create(ctx, "u1", CreateInput{Items: lines, TotalPrice: 25, Address: "a", Phone: "p"})
	require.NoError(t, err)

	// later mutation of the live cart lines must not change the stored order
	lines[0].Quantity = 99
	lines[0].Price = 0.01

	stored, err := repo.GetByID(ctx, "u1", id)
	require.NoError(t, err)
	for _, snap := range stored.Items {
		if snap.ProductID == "p1" {
			assert.Equal(t, 2, snap.Quantity)
			assert.InDelta(t, 10.0, snap.Price, 1e-9)
		}
	}
}

func TestCreateOrderFailsClosed(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated", func(t *testing.T) {
		svc := NewOrderService(newFakeOrderRepo(), nil, nil)
		_, err := svc.Create(ctx, "", CreateInput{Items: cartLines()})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc := NewOrderService(newFakeOrderRepo(), nil, nil)
		_, err := svc.Create(ctx, "u1", CreateInput{})
		assert.ErrorIs(t, err, orderdom.ErrInvalidItems)
	})

	t.Run("write failure surfaces, no retry", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.fail = fmt.Errorf("remote write failed")
		svc := NewOrderService(repo, nil, nil)
		_, err := svc.Create(ctx, "u1", CreateInput{Items: cartLines(), Address: "a", Phone: "p"})
		assert.Error(t, err)
	})
}

func TestCancelOrderWindow(t *testing.T) {
	ctx := context.Background()
	placed := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, repo *fakeOrderRepo) string {
		t.Helper()
		svc := NewOrderServiceWithClock(repo, nil, nil, fixedClock{placed})
		id, err := svc.Create(ctx, "u1", CreateInput{Items: cartLines(), TotalPrice: 25, Address: "a", Phone: "p"})
		require.NoError(t, err)
		return id
	}

	t.Run("inside window cancels a pending order", func(t *testing.T) {
		repo := newFakeOrderRepo()
		id := seed(t, repo)
		svc := NewOrderServiceWithClock(repo, nil, nil, fixedClock{placed.Add(23 * time.Hour)})

		require.NoError(t, svc.Cancel(ctx, "u1", id))
		o, _ := repo.GetByID(ctx, "u1", id)
		assert.Equal(t, orderdom.StatusCancelled, o.Status)
	})

	t.Run("25 hours later is refused and status unchanged", func(t *testing.T) {
		repo := newFakeOrderRepo()
		id := seed(t, repo)
		svc := NewOrderServiceWithClock(repo, nil, nil, fixedClock{placed.Add(25 * time.Hour)})

		assert.ErrorIs(t, svc.Cancel(ctx, "u1", id), orderdom.ErrCancelWindowClosed)
		o, _ := repo.GetByID(ctx, "u1", id)
		assert.Equal(t, orderdom.StatusPending, o.Status)
	})

	t.Run("window is the only gate, status is not re-checked", func(t *testing.T) {
		repo := newFakeOrderRepo()
		id := seed(t, repo)
		require.NoError(t, repo.UpdateStatus(ctx, "u1", id, orderdom.StatusShipped))
		svc := NewOrderServiceWithClock(repo, nil, nil, fixedClock{placed.Add(time.Hour)})

		// observed storefront behavior: a Shipped order inside 24h still cancels
		require.NoError(t, svc.Cancel(ctx, "u1", id))
		o, _ := repo.GetByID(ctx, "u1", id)
		assert.Equal(t, orderdom.StatusCancelled, o.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := NewOrderService(newFakeOrderRepo(), nil, nil)
		assert.ErrorIs(t, svc.Cancel(ctx, "u1", "nope"), ErrNotFound)
	})
}

func TestListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepo()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		svc := NewOrderServiceWithClock(repo, nil, nil, fixedClock{base.Add(time.Duration(i) * time.Hour)})
		_, err := svc.Create(ctx, "u1", CreateInput{Items: cartLines(), Address: "a", Phone: "p"})
		require.NoError(t, err)
	}

	svc := NewOrderService(repo, nil, nil)
	orders, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.True(t, orders[0].Timestamp >= orders[1].Timestamp)
	assert.True(t, orders[1].Timestamp >= orders[2].Timestamp)
}

func TestWatchOrdersSortsEachDelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, nil)

	ch, err := svc.Watch(ctx, "u1")
	require.NoError(t, err)

	mk := func(id string, ts int64) orderdom.Order {
		return orderdom.Order{ID: id, UserID: "u1", Timestamp: ts, Status: orderdom.StatusPending}
	}
	repo.watch <- []orderdom.Order{mk("a", 100), mk("b", 300), mk("c", 200)}

	got := <-ch
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "a", got[2].ID)

	// closing the source closes the consumer channel
	close(repo.watch)
	_, open := <-ch
	assert.False(t, open)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (m *recordingMailer) SendOrderConfirmation(to string, _ orderdom.Order) error {
	m.mu.Lock()
	m.sent = append(m.sent, to)
	m.mu.Unlock()
	close(m.done)
	return nil
}

type fakeUserRepo struct{ p *userdom.Profile }

func (f *fakeUserRepo) GetByUID(context.Context, string) (*userdom.Profile, error) { return f.p, nil }
func (f *fakeUserRepo) Upsert(context.Context, userdom.Profile) error              { return nil }
func (f *fakeUserRepo) UpdateAvatarURL(context.Context, string, string) error      { return nil }

func TestCreateOrderSendsConfirmation(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{done: make(chan struct{})}
	users := &fakeUserRepo{p: &userdom.Profile{UID: "u1", Email: "u1@example.com"}}
	svc := NewOrderService(newFakeOrderRepo(), users, mailer)

	_, err := svc.Create(ctx, "u1", CreateInput{Items: cartLines(), Address: "a", Phone: "p"})
	require.NoError(t, err)

	select {
	case <-mailer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation mail was not sent")
	}
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, []string{"u1@example.com"}, mailer.sent)
}
