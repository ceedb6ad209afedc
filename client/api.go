// Package client is the Go counterpart of the storefront's browser logic: a
// typed API client, a polling catalog synchronizer with an offline fallback,
// a locally persisted cart and the WhatsApp checkout flow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/durwesh/perfume-shop/internal/shop"
)

// API wraps the HTTP surface of the shop server.
type API struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do sends one request and decodes the envelope into out. A non-2xx status or
// success:false becomes an error carrying the server's message.
func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	dec := json.NewDecoder(resp.Body)
	raw := json.RawMessage{}
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("%s", env.Error)
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func (a *API) ListProducts(ctx context.Context) ([]shop.Product, error) {
	var resp struct {
		Products []shop.Product `json:"products"`
	}
	if err := a.do(ctx, http.MethodGet, "/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (a *API) GetProduct(ctx context.Context, id int64) (*shop.Product, error) {
	var resp struct {
		Product *shop.Product `json:"product"`
	}
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// ProductForm mirrors the admin product form; zero-valued optional fields are
// omitted so partial updates touch only what was filled in.
type ProductForm struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Category    *string  `json:"category,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
}

func (a *API) CreateProduct(ctx context.Context, form ProductForm) (*shop.Product, error) {
	var resp struct {
		Product *shop.Product `json:"product"`
	}
	if err := a.do(ctx, http.MethodPost, "/products", form, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

func (a *API) UpdateProduct(ctx context.Context, id int64, form ProductForm) (*shop.Product, error) {
	var resp struct {
		Product *shop.Product `json:"product"`
	}
	if err := a.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), form, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

func (a *API) DeleteProduct(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (a *API) ToggleProductStock(ctx context.Context, id int64) (*shop.Product, error) {
	var resp struct {
		Product *shop.Product `json:"product"`
	}
	if err := a.do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/toggle-stock", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

func (a *API) ListOrders(ctx context.Context) ([]shop.Order, error) {
	var resp struct {
		Orders []shop.Order `json:"orders"`
	}
	if err := a.do(ctx, http.MethodGet, "/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (a *API) GetOrder(ctx context.Context, id int64) (*shop.Order, error) {
	var resp struct {
		Order *shop.Order `json:"order"`
	}
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

type OrderRequest struct {
	Items        []shop.OrderItem `json:"items"`
	TotalPrice   float64          `json:"total_price"`
	CustomerName string           `json:"customer_name,omitempty"`
	PhoneNumber  string           `json:"phone_number,omitempty"`
}

func (a *API) CreateOrder(ctx context.Context, req OrderRequest) (*shop.Order, error) {
	var resp struct {
		Order *shop.Order `json:"order"`
	}
	if err := a.do(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (a *API) UpdateOrderStatus(ctx context.Context, id int64, status shop.Status) (*shop.Order, error) {
	var resp struct {
		Order *shop.Order `json:"order"`
	}
	body := map[string]string{"status": string(status)}
	if err := a.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", id), body, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}
