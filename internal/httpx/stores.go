package httpx

import (
	"context"

	"github.com/durwesh/perfume-shop/internal/shop"
)

// ProductStore is what the product handlers need from the data access layer.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]shop.Product, error)
	GetProduct(ctx context.Context, id int64) (*shop.Product, error)
	CreateProduct(ctx context.Context, np shop.NewProduct) (*shop.Product, error)
	UpdateProduct(ctx context.Context, id int64, up shop.ProductUpdate) (*shop.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	ToggleProductStock(ctx context.Context, id int64) (*shop.Product, error)
}

// OrderStore is what the order handlers need.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]shop.Order, error)
	GetOrder(ctx context.Context, id int64) (*shop.Order, error)
	CreateOrder(ctx context.Context, no shop.NewOrder) (*shop.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status shop.Status) (*shop.Order, error)
}

var (
	_ ProductStore = (*shop.ProductStore)(nil)
	_ ProductStore = (*shop.MemStore)(nil)
	_ OrderStore   = (*shop.OrderStore)(nil)
	_ OrderStore   = (*shop.MemStore)(nil)
)
