// Terminal storefront: browse the catalog, manage a locally persisted cart
// and check out through the WhatsApp deep link.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/durwesh/perfume-shop/client"
)

func main() {
	_ = godotenv.Load()

	baseURL := getenv("API_BASE_URL", "http://localhost:8080")
	merchant := getenv("MERCHANT_PHONE", "254706183308")
	cartDir := getenv("CART_DIR", defaultCartDir())
	offline := os.Getenv("OFFLINE") == "true"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := client.NewAPI(baseURL)
	catalog := client.NewCatalog(client.CatalogConfig{API: api, Offline: offline})
	go catalog.Run(ctx)

	store, err := client.NewFileStore(cartDir)
	if err != nil {
		log.Fatalf("cart storage: %v", err)
	}
	go store.Watch(ctx, time.Second)

	cart, err := client.NewCart(store)
	if err != nil {
		log.Fatalf("cart: %v", err)
	}
	go cart.Sync(ctx)

	fmt.Println("commands: list, add <id>, qty <id> <n>, rm <id>, cart, checkout [name], quit")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "list":
			for _, p := range catalog.Products() {
				stock := "in stock"
				if !p.InStock {
					stock = "out of stock"
				}
				fmt.Printf("#%d %s (%s) KES %.0f — %s\n", p.ID, p.Name, p.Category, p.Price, stock)
			}
		case "add":
			id, ok := parseID(fields, 1)
			if !ok {
				fmt.Println("usage: add <id>")
				continue
			}
			added := false
			for _, p := range catalog.Products() {
				if p.ID == id {
					if !p.InStock {
						fmt.Println("out of stock")
						added = true
						break
					}
					if err := cart.Add(p); err != nil {
						fmt.Println("error:", err)
					} else {
						fmt.Printf("%s added to cart\n", p.Name)
					}
					added = true
					break
				}
			}
			if !added {
				fmt.Println("no such product")
			}
		case "qty":
			id, ok := parseID(fields, 1)
			if !ok || len(fields) < 3 {
				fmt.Println("usage: qty <id> <n>")
				continue
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Println("usage: qty <id> <n>")
				continue
			}
			if err := cart.SetQuantity(id, n); err != nil {
				fmt.Println("error:", err)
			}
		case "rm":
			id, ok := parseID(fields, 1)
			if !ok {
				fmt.Println("usage: rm <id>")
				continue
			}
			if err := cart.Remove(id); err != nil {
				fmt.Println("error:", err)
			}
		case "cart":
			items := cart.Items()
			if len(items) == 0 {
				fmt.Println("cart is empty")
				continue
			}
			for _, it := range items {
				fmt.Printf("- %s x%d @ KES %.0f\n", it.Name, it.Quantity, it.Price)
			}
			fmt.Printf("total: KES %.0f (%d items)\n", cart.TotalPrice(), cart.TotalItems())
		case "checkout":
			name := ""
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			res, err := client.Checkout(ctx, api, cart, merchant, name)
			if err != nil {
				fmt.Println("checkout failed:", err)
				continue
			}
			fmt.Printf("order #%d placed. Open WhatsApp:\n%s\n", res.Order.ID, res.WhatsAppURL)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command")
		}
	}
}

func parseID(fields []string, idx int) (int64, bool) {
	if len(fields) <= idx {
		return 0, false
	}
	id, err := strconv.ParseInt(fields[idx], 10, 64)
	return id, err == nil
}

func defaultCartDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".perfume-shop"
	}
	return home + "/.perfume-shop"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
