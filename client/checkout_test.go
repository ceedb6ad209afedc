package client

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwesh/perfume-shop/internal/shop"
)

func TestCheckout_EmptyCart(t *testing.T) {
	cart, _ := newTestCart(t)
	_, err := Checkout(context.Background(), NewAPI("http://127.0.0.1:1"), cart, "254706183308", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := context.Background()
	api := NewAPI(srv.URL)

	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(product(1, "Rose Elegance", 3800)))
	require.NoError(t, cart.Add(product(1, "Rose Elegance", 3800)))
	require.NoError(t, cart.Add(product(2, "Midnight Oud", 6200)))

	res, err := Checkout(ctx, api, cart, "254706183308", "Amina")
	require.NoError(t, err)

	require.NotNil(t, res.Order)
	assert.Equal(t, shop.StatusPending, res.Order.Status)
	assert.Equal(t, "Amina", res.Order.CustomerName)
	assert.Equal(t, 2*3800.0+6200.0, res.Order.TotalPrice)

	orders, err := mem.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	fetched, err := api.GetOrder(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Order.ID, fetched.ID)
	assert.Equal(t, res.Order.TotalPrice, fetched.TotalPrice)

	assert.Empty(t, cart.Items(), "cart is cleared once the server acknowledges")

	assert.True(t, strings.HasPrefix(res.WhatsAppURL, "https://wa.me/254706183308?text="))
	assert.Contains(t, res.WhatsAppURL, "Rose+Elegance")
	assert.NotContains(t, res.WhatsAppURL, " ", "deep link text must be escaped")
}

func TestCheckout_FailureLeavesCartIntact(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPI(srv.URL)
	srv.Close()

	cart, _ := newTestCart(t)
	require.NoError(t, cart.Add(product(1, "Rose Elegance", 3800)))

	_, err := Checkout(context.Background(), api, cart, "254706183308", "")
	require.Error(t, err)
	assert.Len(t, cart.Items(), 1, "a failed submit must not drop the cart")
}

func TestWhatsAppMessage(t *testing.T) {
	items := []CartItem{
		{ProductID: 1, Name: "Rose Elegance", Price: 3800, Quantity: 2},
		{ProductID: 2, Name: "Midnight Oud", Price: 6200, Quantity: 1},
	}
	msg := whatsAppMessage(items, 13800)

	assert.Equal(t,
		"Hi! I'm interested in:\n"+
			"- Rose Elegance (Qty: 2, KES 3800 each)\n"+
			"- Midnight Oud (Qty: 1, KES 6200 each)\n"+
			"Total: KES 13800",
		msg)
}
