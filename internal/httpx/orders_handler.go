package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/durwesh/perfume-shop/internal/kafka"
	"github.com/durwesh/perfume-shop/internal/shop"
)

// OrdersHandler serves the order endpoints. Created and Status producers are
// optional; when nil (local mode, tests) no events are published.
type OrdersHandler struct {
	Store   OrderStore
	Created *kafkax.Producer // order.created
	Status  *kafkax.Producer // order.status_changed
	Service string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/orders", h.list)
	r.Post("/orders", h.create)
	r.Get("/orders/{id}", h.get)
	r.Patch("/orders/{id}/status", h.updateStatus)
}

type ordersResponse struct {
	Success bool         `json:"success"`
	Orders  []shop.Order `json:"orders"`
	Count   int          `json:"count"`
}

type orderResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Order   *shop.Order `json:"order"`
}

type createOrderReq struct {
	Items        []shop.OrderItem `json:"items"`
	TotalPrice   float64          `json:"total_price"`
	CustomerName string           `json:"customer_name"`
	PhoneNumber  string           `json:"phone_number"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	orders, err := h.Store.ListOrders(ctx)
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []shop.Order{}
	}
	writeJSON(w, http.StatusOK, ordersResponse{Success: true, Orders: orders, Count: len(orders)})
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		fail(w, http.StatusBadRequest, "invalid order ID")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()

	o, err := h.Store.GetOrder(ctx, id)
	if errors.Is(err, shop.ErrNotFound) {
		fail(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Success: true, Order: o})
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Items) == 0 {
		fail(w, http.StatusBadRequest, "order must contain at least one item")
		return
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			fail(w, http.StatusBadRequest, "every item must have a positive quantity")
			return
		}
	}
	if req.TotalPrice <= 0 {
		fail(w, http.StatusBadRequest, "total price must be greater than 0")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	o, err := h.Store.CreateOrder(ctx, shop.NewOrder{
		Items:        req.Items,
		TotalPrice:   req.TotalPrice,
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.publish(h.Created, r, shop.EventOrderCreated, o.ID, shop.OrderCreatedPayload{
		OrderID:      o.ID,
		Items:        o.Items,
		TotalPrice:   o.TotalPrice,
		CustomerName: o.CustomerName,
		PhoneNumber:  o.PhoneNumber,
	})

	writeJSON(w, http.StatusCreated, orderResponse{Success: true, Message: "Order created successfully", Order: o})
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		fail(w, http.StatusBadRequest, "invalid order ID")
		return
	}
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	status := shop.Status(req.Status)
	if !status.Valid() {
		fail(w, http.StatusBadRequest, "invalid status. Must be one of: pending, confirmed, completed, cancelled")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	o, err := h.Store.UpdateOrderStatus(ctx, id, status)
	if errors.Is(err, shop.ErrNotFound) {
		fail(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to update order status")
		return
	}

	h.publish(h.Status, r, shop.EventOrderStatusChanged, o.ID, shop.OrderStatusChangedPayload{
		OrderID: o.ID,
		Status:  o.Status,
	})

	writeJSON(w, http.StatusOK, orderResponse{Success: true, Message: "Order status updated successfully", Order: o})
}

func (h *OrdersHandler) publish(p *kafkax.Producer, r *http.Request, eventType string, orderID int64, payload any) {
	if p == nil {
		return
	}
	ev := shop.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: string(shop.PartitionKey(orderID)),
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(shop.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
