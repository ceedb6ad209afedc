package notify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/durwesh/perfume-shop/internal/shop"
)

// FormatAmount renders a price the way the storefront shows it.
func FormatAmount(v float64) string {
	return "KES " + strconv.FormatFloat(v, 'f', -1, 64)
}

// OrderMessage renders the merchant-facing order summary: one line per item
// with quantity and unit price, then the total and any customer details.
func OrderMessage(p shop.OrderCreatedPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d\n", p.OrderID)
	for _, it := range p.Items {
		fmt.Fprintf(&b, "- %s (Qty: %d) @ %s\n", it.ProductName, it.Quantity, FormatAmount(it.Price))
	}
	fmt.Fprintf(&b, "Total: %s", FormatAmount(p.TotalPrice))
	if p.CustomerName != "" {
		fmt.Fprintf(&b, "\nCustomer: %s", p.CustomerName)
	}
	if p.PhoneNumber != "" {
		fmt.Fprintf(&b, "\nPhone: %s", p.PhoneNumber)
	}
	return b.String()
}

// DeepLink builds the wa.me URL that opens a chat with the text pre-filled.
func DeepLink(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
}
