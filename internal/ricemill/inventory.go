package ricemill

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type riceRow struct {
	StockAvailable float64 // quintals
	MinPrice       float64
	MaxPrice       float64
}

// lockRice takes an exclusive lock on the rice row for the rest of the
// enclosing transaction and returns stock + price bounds.
func lockRice(ctx context.Context, tx pgx.Tx, riceID int64) (riceRow, error) {
	var r riceRow
	err := tx.QueryRow(ctx,
		`SELECT stock_available, min_price, max_price
		 FROM rice_details WHERE rice_id=$1 FOR UPDATE`, riceID).
		Scan(&r.StockAvailable, &r.MinPrice, &r.MaxPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return r, ErrRiceNotFound
	}
	return r, err
}

// decrementStock subtracts quintals without a sufficiency guard: the caller
// must already have verified stock under the same lock. Double-checking here
// would just re-run the check the lock already made safe.
func decrementStock(ctx context.Context, tx pgx.Tx, riceID int64, qtyQuintals float64) error {
	_, err := tx.Exec(ctx,
		`UPDATE rice_details SET stock_available = stock_available - $2 WHERE rice_id=$1`,
		riceID, qtyQuintals)
	return err
}
