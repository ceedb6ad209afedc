package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwesh/perfume-shop/internal/shop"
)

type fakeDedup struct {
	seen map[string]bool
}

func (d *fakeDedup) SetOnce(ctx context.Context, key string) (bool, error) {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

type captureSink struct {
	delivered []Notification
}

func (s *captureSink) Deliver(ctx context.Context, n Notification) error {
	s.delivered = append(s.delivered, n)
	return nil
}

func orderCreatedMessage(t *testing.T, eventID string, p shop.OrderCreatedPayload) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(p)
	require.NoError(t, err)
	env := shop.Envelope{
		EventID:      eventID,
		EventType:    shop.EventOrderCreated,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "test",
		Payload:      payload,
	}
	value, err := json.Marshal(env)
	require.NoError(t, err)
	return kafkago.Message{Key: shop.PartitionKey(p.OrderID), Value: value}
}

func samplePayload() shop.OrderCreatedPayload {
	return shop.OrderCreatedPayload{
		OrderID: 7,
		Items: []shop.OrderItem{
			{ProductID: 1, ProductName: "Rose Elegance", Quantity: 2, Price: 3800},
		},
		TotalPrice:   7600,
		CustomerName: "Amina",
		PhoneNumber:  "254700000001",
	}
}

func TestHandleOrderCreated_Delivers(t *testing.T) {
	sink := &captureSink{}
	svc := &Service{Dedup: &fakeDedup{}, Sink: sink, MerchantPhone: "254706183308"}

	m := orderCreatedMessage(t, "ev-1", samplePayload())
	require.NoError(t, svc.HandleOrderCreated(context.Background(), m))

	require.Len(t, sink.delivered, 1)
	n := sink.delivered[0]
	assert.Equal(t, int64(7), n.OrderID)
	assert.Contains(t, n.Message, "New order #7")
	assert.Contains(t, n.Message, "Rose Elegance (Qty: 2) @ KES 3800")
	assert.Contains(t, n.Message, "Customer: Amina")
	assert.Contains(t, n.WhatsAppURL, "https://wa.me/254706183308?text=")
}

func TestHandleOrderCreated_DuplicateSuppressed(t *testing.T) {
	sink := &captureSink{}
	svc := &Service{Dedup: &fakeDedup{}, Sink: sink, MerchantPhone: "254706183308"}

	m := orderCreatedMessage(t, "ev-1", samplePayload())
	require.NoError(t, svc.HandleOrderCreated(context.Background(), m))
	require.NoError(t, svc.HandleOrderCreated(context.Background(), m))

	assert.Len(t, sink.delivered, 1, "redelivered event must notify once")
}

func TestHandleOrderCreated_IgnoresOtherEventTypes(t *testing.T) {
	sink := &captureSink{}
	svc := &Service{Dedup: &fakeDedup{}, Sink: sink}

	env := shop.Envelope{
		EventID:   "ev-2",
		EventType: shop.EventOrderStatusChanged,
		Payload:   json.RawMessage(`{}`),
	}
	value, err := json.Marshal(env)
	require.NoError(t, err)

	require.NoError(t, svc.HandleOrderCreated(context.Background(), kafkago.Message{Value: value}))
	assert.Empty(t, sink.delivered)
}

func TestHandleOrderCreated_BadJSON(t *testing.T) {
	svc := &Service{Sink: &captureSink{}}
	err := svc.HandleOrderCreated(context.Background(), kafkago.Message{Value: []byte("{broken")})
	assert.Error(t, err)
}

func TestOrderMessage_OmitsEmptyCustomer(t *testing.T) {
	p := samplePayload()
	p.CustomerName = ""
	p.PhoneNumber = ""
	msg := OrderMessage(p)
	assert.NotContains(t, msg, "Customer:")
	assert.NotContains(t, msg, "Phone:")
	assert.Contains(t, msg, "Total: KES 7600")
}

func TestDeepLink_EscapesText(t *testing.T) {
	link := DeepLink("254706183308", "New order #7\nTotal: KES 7600")
	assert.Equal(t, "https://wa.me/254706183308?text=New+order+%237%0ATotal%3A+KES+7600", link)
}
