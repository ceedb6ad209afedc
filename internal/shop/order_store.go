package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, items, total_price, COALESCE(customer_name, ''), COALESCE(phone_number, ''), status, created_at, updated_at`

// OrderStore issues statements against the orders table. Line items are kept
// as one JSON blob per order: orders are only listed and status-transitioned,
// never filtered by item contents, so a child table buys nothing here.
type OrderStore struct{ DB *pgxpool.Pool }

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var rawItems []byte
	err := row.Scan(&o.ID, &rawItems, &o.TotalPrice, &o.CustomerName,
		&o.PhoneNumber, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawItems, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

// ListOrders returns all orders, newest first, with items decoded back to the
// structured list.
func (s *OrderStore) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+orderColumns+`
	                              FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *OrderStore) GetOrder(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(s.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// CreateOrder encodes the line items, stamps status = pending and returns the
// created record with items decoded again.
func (s *OrderStore) CreateOrder(ctx context.Context, no NewOrder) (*Order, error) {
	encoded, err := json.Marshal(no.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	now := time.Now().UTC()
	o, err := scanOrder(s.DB.QueryRow(ctx, `
		INSERT INTO orders (items, total_price, customer_name, phone_number, status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $6)
		RETURNING `+orderColumns,
		encoded, no.TotalPrice, no.CustomerName, no.PhoneNumber, StatusPending, now))
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

// UpdateOrderStatus re-checks the enumeration before touching storage even
// though the HTTP boundary already did.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	o, err := scanOrder(s.DB.QueryRow(ctx, `
		UPDATE orders
		SET status = $2,
		    updated_at = GREATEST($3, updated_at + interval '1 microsecond')
		WHERE id = $1
		RETURNING `+orderColumns, id, status, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}
