package ricemill

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type QuoteResult struct {
	QuoteNumber  int64
	Status       QuoteStatus
	TotalPrice   float64
	OrderCreated bool
}

// SubmitQuoteTx prices a batch of submitted line items and persists the
// quote atomically. Per item: normalize units, lock the rice row, fail the
// whole batch on insufficient stock. A price outside the item's band does
// not fail anything, it only drops auto-approval. When every line is in
// bounds the quote goes straight to Approved and the order is created in
// the same transaction.
//
// Nothing persists on failure — no quote, no items, no order.
func (r *Repo) SubmitQuoteTx(ctx context.Context, salesPersonID int64, items []QuoteLineInput) (*QuoteResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	autoApproved := true
	var totalPrice float64
	lines := make([]QuoteLine, 0, len(items))

	for _, in := range items {
		line := NormalizeLine(in)

		rice, err := lockRice(ctx, tx, line.RiceID)
		if err != nil {
			return nil, err
		}
		if serr := line.CheckStock(rice.StockAvailable); serr != nil {
			return nil, serr // rollback via defer, seluruh batch batal
		}
		if !line.WithinBounds(rice.MinPrice, rice.MaxPrice) {
			autoApproved = false
		}
		totalPrice += line.Amount()
		lines = append(lines, line)
	}

	status := QuotePending
	if autoApproved {
		status = QuoteApproved
	}

	var quoteNumber int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO quotes (sales_person_id, status)
		VALUES ($1, $2) RETURNING quote_number`,
		salesPersonID, status).Scan(&quoteNumber); err != nil {
		return nil, err
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO quote_items (quote_number, rice_id, quoted_price, quantity)
			VALUES ($1, $2, $3, $4)`,
			quoteNumber, l.RiceID, l.PricePerQuintal, l.QuantityQuintals); err != nil {
			return nil, err
		}
	}

	if autoApproved {
		if _, err := tx.Exec(ctx, `
			INSERT INTO orders (quote_number, total_price, status, order_date)
			VALUES ($1, $2, $3, CURRENT_DATE)`,
			quoteNumber, totalPrice, OrderWaiting); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &QuoteResult{
		QuoteNumber:  quoteNumber,
		Status:       status,
		TotalPrice:   totalPrice,
		OrderCreated: autoApproved,
	}, nil
}
