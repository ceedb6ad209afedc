package client

import (
	"context"
	"sync"
	"time"

	"github.com/durwesh/perfume-shop/internal/shop"
)

const DefaultPollInterval = 30 * time.Second

type CatalogConfig struct {
	API      *API
	Interval time.Duration // 0 means DefaultPollInterval
	// Offline skips the network entirely and serves the fallback catalog.
	Offline bool
	// Fallback is shown when the API is unreachable; nil means SampleCatalog.
	Fallback []shop.Product
}

// Catalog keeps a local snapshot of the product list fresh by interval
// polling. The snapshot is replaced wholesale on every successful fetch;
// responses that complete out of order are discarded by sequence number, so a
// slow poll can never clobber a fresher one.
type Catalog struct {
	api      *API
	interval time.Duration
	offline  bool
	fallback []shop.Product

	mu       sync.Mutex
	products []shop.Product
	loaded   bool
	nextSeq  uint64
	applied  uint64
	syncedAt time.Time
}

func NewCatalog(cfg CatalogConfig) *Catalog {
	c := &Catalog{
		api:      cfg.API,
		interval: cfg.Interval,
		offline:  cfg.Offline,
		fallback: cfg.Fallback,
	}
	if c.interval <= 0 {
		c.interval = DefaultPollInterval
	}
	if c.fallback == nil {
		c.fallback = SampleCatalog()
	}
	return c
}

// Refresh runs one polling cycle. A failed fetch applies the fallback only
// when nothing has been loaded yet; otherwise the previous snapshot stays in
// place until the next cycle.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.offline {
		c.applyFallback()
		return nil
	}

	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.mu.Unlock()

	products, err := c.api.ListProducts(ctx)
	if err != nil {
		c.applyFallback()
		return err
	}
	c.apply(seq, products)
	return nil
}

// Run refreshes immediately, then on every tick until ctx is cancelled.
func (c *Catalog) Run(ctx context.Context) {
	_ = c.Refresh(ctx)
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = c.Refresh(ctx)
		}
	}
}

func (c *Catalog) apply(seq uint64, products []shop.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.applied {
		return // stale completion
	}
	c.applied = seq
	c.products = products
	c.loaded = true
	c.syncedAt = time.Now().UTC()
}

func (c *Catalog) applyFallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return
	}
	c.products = append([]shop.Product(nil), c.fallback...)
	c.loaded = true
}

// Products returns a copy of the current snapshot.
func (c *Catalog) Products() []shop.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]shop.Product(nil), c.products...)
}

// SyncedAt reports when a live payload was last applied; zero when the view
// only ever saw the fallback.
func (c *Catalog) SyncedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncedAt
}
