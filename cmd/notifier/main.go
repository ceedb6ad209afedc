package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/durwesh/perfume-shop/internal/config"
	kafkax "github.com/durwesh/perfume-shop/internal/kafka"
	"github.com/durwesh/perfume-shop/internal/notify"
	"github.com/durwesh/perfume-shop/internal/redisx"
	"github.com/durwesh/perfume-shop/internal/shop"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Service{
		Dedup:         &notify.RedisDedup{Client: rdb},
		Sink:          notify.LogSink{},
		ServiceName:   cfg.ServiceName + "-notifier",
		MerchantPhone: cfg.MerchantPhone,
	}

	group := getenv("NOTIFIER_GROUP", "shop-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, shop.TopicOrderCreated, workers)

	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, shop.TopicOrderCreated, workers)
		if err := cons.Start(ctx, svc.HandleOrderCreated); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
