package shop

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduct carries the admin-supplied fields for a product insert.
// Identity and timestamps are assigned by the store.
type NewProduct struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
	InStock     bool
}

// ProductUpdate applies only the non-nil fields; everything else is left
// untouched. The update timestamp is always refreshed.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	InStock     *bool
}

// OrderItem is a line item with name and price captured at order time,
// never live-joined against the catalog.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID           int64       `json:"id"`
	Items        []OrderItem `json:"items"`
	TotalPrice   float64     `json:"total_price"`
	CustomerName string      `json:"customer_name,omitempty"`
	PhoneNumber  string      `json:"phone_number,omitempty"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type NewOrder struct {
	Items        []OrderItem
	TotalPrice   float64
	CustomerName string
	PhoneNumber  string
}
