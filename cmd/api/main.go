package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/durwesh/perfume-shop/internal/config"
	"github.com/durwesh/perfume-shop/internal/httpx"
	kafkax "github.com/durwesh/perfume-shop/internal/kafka"
	"github.com/durwesh/perfume-shop/internal/postgres"
	"github.com/durwesh/perfume-shop/internal/shop"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var products httpx.ProductStore
	var orders httpx.OrderStore
	var created, status *kafkax.Producer

	if cfg.LocalMode {
		log.Println("local mode: in-memory store, no broker")
		mem := shop.NewMemStore()
		products, orders = mem, mem
	} else {
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer db.Close()
		products = &shop.ProductStore{DB: db}
		orders = &shop.OrderStore{DB: db}

		created = kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicOrderCreated, 1024)
		created.Start(ctx)
		status = kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicOrderStatusChanged, 1024)
		status.Start(ctx)
	}

	router := httpx.NewRouter()
	ph := &httpx.ProductsHandler{Store: products}
	ph.Register(router)
	oh := &httpx.OrdersHandler{Store: orders, Created: created, Status: status, Service: cfg.ServiceName}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel() // stop producer loops; they flush whatever is buffered
	if created != nil {
		created.WaitClosed()
		status.WaitClosed()
	}
}
