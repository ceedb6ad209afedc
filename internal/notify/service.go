package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/durwesh/perfume-shop/internal/kafka"
	"github.com/durwesh/perfume-shop/internal/redisx"
	"github.com/durwesh/perfume-shop/internal/shop"
)

// Notification is the merchant-facing summary built from an order event.
type Notification struct {
	OrderID     int64
	Message     string
	WhatsAppURL string
}

// Sink receives finished notifications. The default deployment logs them; a
// real gateway integration would slot in here.
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

// Dedup suppresses replayed events. May be nil to process everything.
type Dedup interface {
	SetOnce(ctx context.Context, key string) (bool, error)
}

// Service consumes order.created events and turns each order into a WhatsApp
// summary for the merchant.
type Service struct {
	Dedup         Dedup
	Sink          Sink
	ServiceName   string
	MerchantPhone string
}

// HandleOrderCreated is installed as the consumer handler.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env shop.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != shop.EventOrderCreated {
		return nil // ignore
	}

	if s.Dedup != nil {
		key := fmt.Sprintf(redisx.KeyDedup, "notify", env.EventID)
		fresh, err := s.Dedup.SetOnce(ctx, key)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}
	}

	p, err := kafkax.UnwrapPayload[shop.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	msg := OrderMessage(p)
	return s.Sink.Deliver(ctx, Notification{
		OrderID:     p.OrderID,
		Message:     msg,
		WhatsAppURL: DeepLink(s.MerchantPhone, msg),
	})
}

// RedisDedup backs Dedup with SET NX + TTL.
type RedisDedup struct{ Client *redis.Client }

func (d *RedisDedup) SetOnce(ctx context.Context, key string) (bool, error) {
	return redisx.SetOnce(ctx, d.Client, key, redisx.TTLDedup)
}

// LogSink writes notifications to the process log.
type LogSink struct{}

func (LogSink) Deliver(ctx context.Context, n Notification) error {
	log.Printf("order #%d notification:\n%s\n%s", n.OrderID, n.Message, n.WhatsAppURL)
	return nil
}
