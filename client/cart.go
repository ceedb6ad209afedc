package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/durwesh/perfume-shop/internal/shop"
)

const cartKey = "cart"

// CartItem is a catalog entry plus a quantity, with name and price frozen at
// the moment it was added.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the shopping cart entirely client-side. Every mutation is a
// synchronous local operation persisted through Storage; nothing touches the
// server until checkout.
type Cart struct {
	storage Storage

	mu      sync.Mutex
	items   []CartItem // insertion order preserved
	applied time.Time  // timestamp of the last adopted entry
}

// NewCart loads any previously persisted cart so it survives a restart.
func NewCart(storage Storage) (*Cart, error) {
	c := &Cart{storage: storage}
	e, ok, err := storage.Get(cartKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var items []CartItem
		if err := json.Unmarshal(e.Data, &items); err == nil {
			c.items = items
			c.applied = e.UpdatedAt
		}
	}
	return c, nil
}

// Sync adopts cart writes from other sessions sharing the same storage, but
// only when their timestamp is strictly newer than the last applied one.
func (c *Cart) Sync(ctx context.Context) {
	ch, cancel := c.storage.Subscribe(cartKey)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-ch:
			c.adopt(e)
		}
	}
}

func (c *Cart) adopt(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !e.UpdatedAt.After(c.applied) {
		return
	}
	var items []CartItem
	if err := json.Unmarshal(e.Data, &items); err != nil {
		return
	}
	c.items = items
	c.applied = e.UpdatedAt
}

// persist writes the current items; callers hold the lock.
func (c *Cart) persist() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if !now.After(c.applied) {
		now = c.applied.Add(time.Nanosecond)
	}
	c.applied = now
	return c.storage.Set(cartKey, Entry{UpdatedAt: now, Data: data})
}

// Add puts one unit of the product in the cart, or bumps the quantity when it
// is already there.
func (c *Cart) Add(p shop.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return c.persist()
		}
	}
	c.items = append(c.items, CartItem{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1})
	return c.persist()
}

// SetQuantity changes a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		return c.removeLocked(productID)
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return c.persist()
		}
	}
	return nil
}

func (c *Cart) Remove(productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID int64) error {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persist()
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.items...)
}

func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}
