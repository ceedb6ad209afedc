package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, description, price, image_url, category, in_stock, created_at, updated_at`

// ProductStore is the only component issuing statements against the products
// table.
type ProductStore struct{ DB *pgxpool.Pool }

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Category, &p.InStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns the whole catalog, newest first. No pagination.
func (s *ProductStore) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+productColumns+`
	                              FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.Category, &p.InStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *ProductStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(s.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// CreateProduct inserts a row with server-assigned id and timestamps and
// returns the full created record.
func (s *ProductStore) CreateProduct(ctx context.Context, np NewProduct) (*Product, error) {
	now := time.Now().UTC()
	p, err := scanProduct(s.DB.QueryRow(ctx, `
		INSERT INTO products (name, description, price, image_url, category, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING `+productColumns,
		np.Name, np.Description, np.Price, np.ImageURL, np.Category, np.InStock, now))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// UpdateProduct applies only the supplied fields and always refreshes
// updated_at, all in one statement.
func (s *ProductStore) UpdateProduct(ctx context.Context, id int64, up ProductUpdate) (*Product, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if up.Name != nil {
		add("name", *up.Name)
	}
	if up.Description != nil {
		add("description", *up.Description)
	}
	if up.Price != nil {
		add("price", *up.Price)
	}
	if up.ImageURL != nil {
		add("image_url", *up.ImageURL)
	}
	if up.Category != nil {
		add("category", *up.Category)
	}
	if up.InStock != nil {
		add("in_stock", *up.InStock)
	}
	// keep updated_at strictly increasing even within one clock tick
	args = append(args, time.Now().UTC())
	set = append(set, fmt.Sprintf("updated_at = GREATEST($%d, updated_at + interval '1 microsecond')", len(args)))

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), productColumns)

	p, err := scanProduct(s.DB.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// DeleteProduct reports whether a row was actually removed, so callers can
// tell "deleted" from "was already absent".
func (s *ProductStore) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	ct, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// ToggleProductStock flips in_stock in a single statement so two concurrent
// toggles cannot race through a read-then-write.
func (s *ProductStore) ToggleProductStock(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(s.DB.QueryRow(ctx, `
		UPDATE products
		SET in_stock = NOT in_stock,
		    updated_at = GREATEST($2, updated_at + interval '1 microsecond')
		WHERE id = $1
		RETURNING `+productColumns, id, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle stock: %w", err)
	}
	return p, nil
}
