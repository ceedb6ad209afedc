package shop

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore keeps the whole catalog in process memory. It backs local/offline
// mode and the tests; the operation surface matches the Postgres stores.
type MemStore struct {
	mu            sync.RWMutex
	nextProductID int64
	nextOrderID   int64
	products      map[int64]Product
	orders        map[int64]Order
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextProductID: 1,
		nextOrderID:   1,
		products:      make(map[int64]Product),
		orders:        make(map[int64]Order),
	}
}

// now returns a UTC timestamp strictly after prev, so updated_at advances
// even when the clock has not ticked between two calls.
func now(prev time.Time) time.Time {
	t := time.Now().UTC()
	if !t.After(prev) {
		t = prev.Add(time.Nanosecond)
	}
	return t
}

func (m *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m *MemStore) CreateProduct(ctx context.Context, np NewProduct) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := time.Now().UTC()
	p := Product{
		ID:          m.nextProductID,
		Name:        np.Name,
		Description: np.Description,
		Price:       np.Price,
		ImageURL:    np.ImageURL,
		Category:    np.Category,
		InStock:     np.InStock,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	m.nextProductID++
	m.products[p.ID] = p
	return &p, nil
}

func (m *MemStore) UpdateProduct(ctx context.Context, id int64, up ProductUpdate) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if up.Name != nil {
		p.Name = *up.Name
	}
	if up.Description != nil {
		p.Description = *up.Description
	}
	if up.Price != nil {
		p.Price = *up.Price
	}
	if up.ImageURL != nil {
		p.ImageURL = *up.ImageURL
	}
	if up.Category != nil {
		p.Category = *up.Category
	}
	if up.InStock != nil {
		p.InStock = *up.InStock
	}
	p.UpdatedAt = now(p.UpdatedAt)
	m.products[id] = p
	return &p, nil
}

func (m *MemStore) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func (m *MemStore) ToggleProductStock(ctx context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.InStock = !p.InStock
	p.UpdatedAt = now(p.UpdatedAt)
	m.products[id] = p
	return &p, nil
}

func (m *MemStore) ListOrders(ctx context.Context) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Order, 0, len(m.orders))
	for _, o := range m.orders {
		o.Items = append([]OrderItem(nil), o.Items...)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemStore) GetOrder(ctx context.Context, id int64) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *MemStore) CreateOrder(ctx context.Context, no NewOrder) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := time.Now().UTC()
	o := Order{
		ID:           m.nextOrderID,
		Items:        append([]OrderItem(nil), no.Items...),
		TotalPrice:   no.TotalPrice,
		CustomerName: no.CustomerName,
		PhoneNumber:  no.PhoneNumber,
		Status:       StatusPending,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	m.nextOrderID++
	m.orders[o.ID] = o
	return &o, nil
}

func (m *MemStore) UpdateOrderStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = now(o.UpdatedAt)
	m.orders[id] = o
	cp := o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp, nil
}
