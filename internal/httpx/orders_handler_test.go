package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwesh/perfume-shop/internal/shop"
)

func validOrderBody() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product_id": 1, "product_name": "Rose Elegance", "quantity": 2, "price": 3800},
		},
		"total_price":   7600,
		"customer_name": "Amina",
		"phone_number":  "254700000001",
	}
}

func TestCreateOrder(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doReq(t, r, http.MethodPost, "/orders", validOrderBody())
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp orderResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Order created successfully", resp.Message)
	require.NotNil(t, resp.Order)
	assert.Equal(t, shop.StatusPending, resp.Order.Status)
	assert.Equal(t, "Amina", resp.Order.CustomerName)
	require.Len(t, resp.Order.Items, 1)
	assert.Equal(t, 2, resp.Order.Items[0].Quantity)
}

func TestCreateOrder_Validation(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{
		{"no items", func(b map[string]any) { b["items"] = []map[string]any{} }, "order must contain at least one item"},
		{"zero quantity", func(b map[string]any) {
			b["items"] = []map[string]any{{"product_id": 1, "product_name": "X", "quantity": 0, "price": 10}}
		}, "every item must have a positive quantity"},
		{"zero total", func(b map[string]any) { b["total_price"] = 0 }, "total price must be greater than 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := validOrderBody()
			tc.mutate(body)
			rec := doReq(t, r, http.MethodPost, "/orders", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp errorEnvelope
			decode(t, rec, &resp)
			assert.Equal(t, tc.wantErr, resp.Error)
		})
	}
}

func TestCreateOrder_AnonymousCustomer(t *testing.T) {
	r, _ := newTestRouter(t)

	body := validOrderBody()
	delete(body, "customer_name")
	delete(body, "phone_number")
	rec := doReq(t, r, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp orderResponse
	decode(t, rec, &resp)
	assert.Empty(t, resp.Order.CustomerName)
	assert.Empty(t, resp.Order.PhoneNumber)
}

func TestListOrders(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doReq(t, r, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"orders":[]`)

	doReq(t, r, http.MethodPost, "/orders", validOrderBody())
	rec = doReq(t, r, http.MethodGet, "/orders", nil)
	var resp ordersResponse
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Orders, 1)
}

func TestGetOrder(t *testing.T) {
	r, _ := newTestRouter(t)
	doReq(t, r, http.MethodPost, "/orders", validOrderBody())

	rec := doReq(t, r, http.MethodGet, "/orders/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp orderResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Order)
	assert.Equal(t, int64(1), resp.Order.ID)
	assert.Equal(t, shop.StatusPending, resp.Order.Status)

	rec = doReq(t, r, http.MethodGet, "/orders/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doReq(t, r, http.MethodGet, "/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var er errorEnvelope
	decode(t, rec, &er)
	assert.Equal(t, "invalid order ID", er.Error)
}

func TestUpdateOrderStatus(t *testing.T) {
	r, _ := newTestRouter(t)
	doReq(t, r, http.MethodPost, "/orders", validOrderBody())

	rec := doReq(t, r, http.MethodPatch, "/orders/1/status", map[string]any{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp orderResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Order status updated successfully", resp.Message)
	assert.Equal(t, shop.StatusConfirmed, resp.Order.Status)

	// any enumerated status is reachable from any other
	rec = doReq(t, r, http.MethodPatch, "/orders/1/status", map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, shop.StatusPending, resp.Order.Status)
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	r, _ := newTestRouter(t)
	doReq(t, r, http.MethodPost, "/orders", validOrderBody())

	rec := doReq(t, r, http.MethodPatch, "/orders/1/status", map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var er errorEnvelope
	decode(t, rec, &er)
	assert.Equal(t, "invalid status. Must be one of: pending, confirmed, completed, cancelled", er.Error)

	rec = doReq(t, r, http.MethodPatch, "/orders/99/status", map[string]any{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doReq(t, r, http.MethodPatch, "/orders/zero/status", map[string]any{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	decode(t, rec, &er)
	assert.Equal(t, "invalid order ID", er.Error)
}
