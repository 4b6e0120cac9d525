package ricemill

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// ListRice returns in-stock rice varieties with their price bounds.
// Read-only, no locks.
func (r *Repo) ListRice(ctx context.Context) ([]RiceItem, error) {
	rows, err := r.DB.Query(ctx, `SELECT rice_id, rice_name, description, stock_available, min_price, max_price
	                              FROM rice_details WHERE stock_available > 0 ORDER BY rice_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RiceItem
	for rows.Next() {
		var it RiceItem
		if err := rows.Scan(&it.RiceID, &it.RiceName, &it.Description, &it.StockAvailable, &it.MinPrice, &it.MaxPrice); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) GetOrderStatus(ctx context.Context, orderID int64) (OrderStatus, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE order_id=$1`, orderID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return OrderStatus(s), nil
}

// RiceDetailsUpdate is one owner-side maintenance entry: adjust the price
// band and optionally top up stock (quintals).
type RiceDetailsUpdate struct {
	RiceID   int64   `json:"rice_id"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	AddStock float64 `json:"add_stock"`
}

// UpdateRiceDetailsTx applies all updates in one transaction, locking each
// rice row first so a concurrent quote or payment never reads a half-applied
// batch.
func (r *Repo) UpdateRiceDetailsTx(ctx context.Context, updates []RiceDetailsUpdate) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range updates {
		if _, err := lockRice(ctx, tx, u.RiceID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE rice_details
			SET min_price=$2, max_price=$3, stock_available = stock_available + $4
			WHERE rice_id=$1`,
			u.RiceID, u.MinPrice, u.MaxPrice, u.AddStock); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
