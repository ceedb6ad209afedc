package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwesh/perfume-shop/internal/shop"
)

func newTestCart(t *testing.T) (*Cart, *FileStore) {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	cart, err := NewCart(store)
	require.NoError(t, err)
	return cart, store
}

func product(id int64, name string, price float64) shop.Product {
	return shop.Product{ID: id, Name: name, Price: price, InStock: true}
}

func TestCart_AddAndTotals(t *testing.T) {
	cart, _ := newTestCart(t)

	require.NoError(t, cart.Add(product(1, "Rose", 3800)))
	require.NoError(t, cart.Add(product(2, "Oud", 6200)))
	require.NoError(t, cart.Add(product(1, "Rose", 3800)))

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Rose", items[0].Name, "insertion order preserved")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, 2*3800.0+6200.0, cart.TotalPrice())
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(product(1, "Rose", 3800)))

	require.NoError(t, cart.SetQuantity(1, 5))
	assert.Equal(t, 5, cart.Items()[0].Quantity)

	// zero quantity removes the line
	require.NoError(t, cart.SetQuantity(1, 0))
	assert.Empty(t, cart.Items())

	// mutations on absent lines are no-ops
	require.NoError(t, cart.SetQuantity(9, 3))
	require.NoError(t, cart.Remove(9))
	assert.Empty(t, cart.Items())
}

func TestCart_PersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	cart, err := NewCart(store)
	require.NoError(t, err)

	require.NoError(t, cart.Add(product(1, "Rose", 3800)))
	require.NoError(t, cart.Add(product(2, "Oud", 6200)))

	store2, err := NewFileStore(dir)
	require.NoError(t, err)
	cart2, err := NewCart(store2)
	require.NoError(t, err)

	assert.Equal(t, cart.Items(), cart2.Items())
	assert.Equal(t, cart.TotalPrice(), cart2.TotalPrice())
}

func TestCart_AdoptIgnoresStaleEntries(t *testing.T) {
	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(product(1, "Rose", 3800)))

	stale, err := json.Marshal([]CartItem{{ProductID: 9, Name: "Old", Price: 1, Quantity: 1}})
	require.NoError(t, err)
	cart.adopt(Entry{UpdatedAt: time.Now().UTC().Add(-time.Hour), Data: stale})

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Rose", items[0].Name)
}

func TestCart_AdoptAppliesNewerEntries(t *testing.T) {
	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(product(1, "Rose", 3800)))

	newer, err := json.Marshal([]CartItem{{ProductID: 2, Name: "Oud", Price: 6200, Quantity: 2}})
	require.NoError(t, err)
	cart.adopt(Entry{UpdatedAt: time.Now().UTC().Add(time.Hour), Data: newer})

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Oud", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestFileStore_GetSet(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := store.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	e := Entry{UpdatedAt: time.Now().UTC(), Data: json.RawMessage(`[1,2,3]`)}
	require.NoError(t, store.Set("cart", e))

	got, ok, err := store.Get("cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[1,2,3]`, string(got.Data))
	assert.True(t, got.UpdatedAt.Equal(e.UpdatedAt))
}

func TestFileStore_SubscribeDeliversWrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ch, cancel := store.Subscribe("cart")
	defer cancel()

	e := Entry{UpdatedAt: time.Now().UTC(), Data: json.RawMessage(`[]`)}
	require.NoError(t, store.Set("cart", e))

	select {
	case got := <-ch:
		assert.True(t, got.UpdatedAt.Equal(e.UpdatedAt))
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the write")
	}

	// a rewrite with the same timestamp is suppressed
	require.NoError(t, store.Set("cart", e))
	select {
	case <-ch:
		t.Fatal("stale timestamp must not be redelivered")
	case <-time.After(50 * time.Millisecond):
	}
}
