package ricemill

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type DecisionResult struct {
	QuoteNumber int64
	Status      QuoteStatus
	TotalPrice  float64 // set on approval
}

// DecideQuoteTx runs the owner's Approve/Reject decision on a Pending quote.
// Approved and Rejected are terminal; deciding an already-decided quote
// fails with ErrQuoteNotPending and changes nothing.
//
// Approval recomputes the total from the stored quote_items (already
// normalized at submission) and creates the order. Stock and price bounds
// are deliberately not re-validated here — stock may have moved since
// submission and is re-checked at payment time.
func (r *Repo) DecideQuoteTx(ctx context.Context, quoteNumber int64, action DecisionAction) (*DecisionResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status QuoteStatus
	err = tx.QueryRow(ctx, `SELECT status FROM quotes WHERE quote_number=$1 FOR UPDATE`, quoteNumber).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != QuotePending {
		return nil, ErrQuoteNotPending
	}

	if action == ActionReject {
		if _, err := tx.Exec(ctx, `UPDATE quotes SET status=$1 WHERE quote_number=$2`,
			QuoteRejected, quoteNumber); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return &DecisionResult{QuoteNumber: quoteNumber, Status: QuoteRejected}, nil
	}

	var totalPrice float64
	rows, err := tx.Query(ctx, `SELECT quantity, quoted_price FROM quote_items WHERE quote_number=$1`, quoteNumber)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var qty, price float64
		if err := rows.Scan(&qty, &price); err != nil {
			rows.Close()
			return nil, err
		}
		totalPrice += qty * price
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE quotes SET status=$1 WHERE quote_number=$2`,
		QuoteApproved, quoteNumber); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (quote_number, total_price, status, order_date)
		VALUES ($1, $2, $3, CURRENT_DATE)`,
		quoteNumber, totalPrice, OrderWaiting); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &DecisionResult{QuoteNumber: quoteNumber, Status: QuoteApproved, TotalPrice: totalPrice}, nil
}
