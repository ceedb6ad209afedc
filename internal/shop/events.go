package shop

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Envelope is the wire shape shared by every event published to Kafka.
type Envelope struct {
	EventID       string          `json:"event_id"` // uuid
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "shop-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID      int64       `json:"order_id"`
	Items        []OrderItem `json:"items"`
	TotalPrice   float64     `json:"total_price"`
	CustomerName string      `json:"customer_name,omitempty"`
	PhoneNumber  string      `json:"phone_number,omitempty"`
}

type OrderStatusChangedPayload struct {
	OrderID int64  `json:"order_id"`
	Status  Status `json:"status"`
}
