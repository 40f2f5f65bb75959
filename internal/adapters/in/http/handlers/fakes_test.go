// internal/adapters/in/http/handlers/fakes_test.go
package handlers

import (
	"context"
	"io"
	"strconv"
	"sync"

	cartdom "onlineshop/internal/domain/cart"
	catalogdom "onlineshop/internal/domain/catalog"
	orderdom "onlineshop/internal/domain/order"
	userdom "onlineshop/internal/domain/user"
)

// ---------------------------------------------------------------------------
// cart
// ---------------------------------------------------------------------------

type fakeCartRepo struct {
	mu    sync.Mutex
	lines map[string][]cartdom.Item // userID -> ordered lines
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: map[string][]cartdom.Item{}}
}

func (f *fakeCartRepo) GetLine(_ context.Context, userID, lineKey string) (*cartdom.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.lines[userID] {
		if it.Key() == lineKey {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) PutLine(_ context.Context, userID string, it cartdom.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.lines[userID] {
		if existing.Key() == it.Key() {
			f.lines[userID][i] = it
			return nil
		}
	}
	f.lines[userID] = append(f.lines[userID], it)
	return nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, userID, lineKey string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.lines[userID] {
		if it.Key() == lineKey {
			f.lines[userID][i].Quantity = quantity
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, userID, lineKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.lines[userID][:0]
	for _, it := range f.lines[userID] {
		if it.Key() != lineKey {
			kept = append(kept, it)
		}
	}
	f.lines[userID] = kept
	return nil
}

func (f *fakeCartRepo) ListLines(_ context.Context, userID string) ([]cartdom.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cartdom.CloneItems(f.lines[userID]), nil
}

func (f *fakeCartRepo) DeleteAll(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lines, userID)
	return nil
}

// ---------------------------------------------------------------------------
// order
// ---------------------------------------------------------------------------

type fakeOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]map[string]orderdom.Order // userID -> orderID -> order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]map[string]orderdom.Order{}}
}

func (f *fakeOrderRepo) NewOrderID(string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return "ord-" + strconv.Itoa(f.seq)
}

func (f *fakeOrderRepo) Create(_ context.Context, o orderdom.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.orders[o.UserID] == nil {
		f.orders[o.UserID] = map[string]orderdom.Order{}
	}
	f.orders[o.UserID][o.ID] = o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, userID, orderID string) (*orderdom.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[userID][orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, userID, orderID string, st orderdom.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.orders[userID][orderID]
	o.Status = st
	f.orders[userID][orderID] = o
	return nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]orderdom.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]orderdom.Order, 0, len(f.orders[userID]))
	for _, o := range f.orders[userID] {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) WatchByUser(ctx context.Context, userID string) (<-chan []orderdom.Order, error) {
	ch := make(chan []orderdom.Order, 1)
	current, _ := f.ListByUser(ctx, userID)
	ch <- current
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

// ---------------------------------------------------------------------------
// catalog
// ---------------------------------------------------------------------------

type fakeCatalogRepo struct {
	banners    []catalogdom.Banner
	categories []catalogdom.Category
	items      []catalogdom.Item
}

func (f *fakeCatalogRepo) Banners(context.Context) ([]catalogdom.Banner, error) {
	return f.banners, nil
}

func (f *fakeCatalogRepo) WatchBanners(ctx context.Context) (<-chan []catalogdom.Banner, error) {
	ch := make(chan []catalogdom.Banner, 1)
	ch <- f.banners
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (f *fakeCatalogRepo) Categories(context.Context) ([]catalogdom.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalogRepo) WatchCategories(ctx context.Context) (<-chan []catalogdom.Category, error) {
	ch := make(chan []catalogdom.Category, 1)
	ch <- f.categories
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (f *fakeCatalogRepo) Popular(context.Context) ([]catalogdom.Item, error) {
	var out []catalogdom.Item
	for _, it := range f.items {
		if it.ShowRecommended {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) ByCategory(_ context.Context, categoryID string) ([]catalogdom.Item, error) {
	var out []catalogdom.Item
	for _, it := range f.items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) ItemByID(_ context.Context, itemID string) (*catalogdom.Item, error) {
	for _, it := range f.items {
		if it.ID == itemID {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) AllItems(context.Context) ([]catalogdom.Item, error) {
	return f.items, nil
}

// ---------------------------------------------------------------------------
// user
// ---------------------------------------------------------------------------

type memUserRepo struct {
	mu       sync.Mutex
	profiles map[string]userdom.Profile
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{profiles: map[string]userdom.Profile{}}
}

func (m *memUserRepo) GetByUID(_ context.Context, uid string) (*userdom.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memUserRepo) Upsert(_ context.Context, p userdom.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UID] = p
	return nil
}

func (m *memUserRepo) UpdateAvatarURL(_ context.Context, uid, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profiles[uid]
	p.UID = uid
	p.AvatarURL = url
	m.profiles[uid] = p
	return nil
}

type stubUploader struct {
	url string
}

func (s stubUploader) Upload(context.Context, string, io.Reader) (string, error) {
	return s.url, nil
}
