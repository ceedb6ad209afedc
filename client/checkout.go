package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/durwesh/perfume-shop/internal/shop"
)

var ErrEmptyCart = errors.New("cart is empty")

type CheckoutResult struct {
	Order       *shop.Order
	WhatsAppURL string
}

// Checkout submits the cart as an order and, once the server acknowledges it,
// builds the WhatsApp deep link and clears the cart. On failure the cart is
// left intact and no link is produced.
func Checkout(ctx context.Context, api *API, cart *Cart, merchantPhone, customerName string) (*CheckoutResult, error) {
	items := cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]shop.OrderItem, 0, len(items))
	var total float64
	for _, it := range items {
		orderItems = append(orderItems, shop.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
		total += it.Price * float64(it.Quantity)
	}

	order, err := api.CreateOrder(ctx, OrderRequest{
		Items:        orderItems,
		TotalPrice:   total,
		CustomerName: customerName,
		PhoneNumber:  merchantPhone,
	})
	if err != nil {
		return nil, err
	}

	msg := whatsAppMessage(items, total)
	link := "https://wa.me/" + merchantPhone + "?text=" + url.QueryEscape(msg)

	if err := cart.Clear(); err != nil {
		return nil, err
	}
	return &CheckoutResult{Order: order, WhatsAppURL: link}, nil
}

// whatsAppMessage matches the storefront's pre-filled chat text.
func whatsAppMessage(items []CartItem, total float64) string {
	var b strings.Builder
	b.WriteString("Hi! I'm interested in:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s (Qty: %d, %s each)\n", it.Name, it.Quantity, formatAmount(it.Price))
	}
	fmt.Fprintf(&b, "Total: %s", formatAmount(total))
	return b.String()
}

func formatAmount(v float64) string {
	return "KES " + strconv.FormatFloat(v, 'f', -1, 64)
}
