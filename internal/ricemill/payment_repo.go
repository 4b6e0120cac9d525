package ricemill

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type PaymentResult struct {
	PaymentID int64
	OrderID   int64
	Amount    float64
}

// PayOrderTx moves an order Waiting -> Paid: ownership check, status guard,
// stock check + decrement for every line item, then the payment row.
// All item stock rows are locked and pre-checked before any decrement, so a
// shortfall on the last item leaves every earlier item untouched.
func (r *Repo) PayOrderTx(ctx context.Context, userID, orderID int64, addressID int64) (*PaymentResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		status        OrderStatus
		salesPersonID int64
		totalPrice    float64
	)
	err = tx.QueryRow(ctx, `
		SELECT o.status, q.sales_person_id, o.total_price
		FROM orders o
		JOIN quotes q ON o.quote_number = q.quote_number
		WHERE o.order_id = $1 FOR UPDATE`, orderID).
		Scan(&status, &salesPersonID, &totalPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	// Ownership before state: a stranger learns nothing about the order.
	if salesPersonID != userID {
		return nil, ErrUnauthorized
	}
	if status != OrderWaiting {
		return nil, &InvalidStateError{Status: status}
	}

	// Lock every item's stock row and pre-check sufficiency, then decrement.
	rows, err := tx.Query(ctx, `
		SELECT qi.rice_id, qi.quantity
		FROM orders o
		JOIN quote_items qi ON o.quote_number = qi.quote_number
		WHERE o.order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	type itemQty struct {
		riceID int64
		qty    float64 // quintals
	}
	var items []itemQty
	for rows.Next() {
		var it itemQty
		if err := rows.Scan(&it.riceID, &it.qty); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, it := range items {
		rice, err := lockRice(ctx, tx, it.riceID)
		if err != nil {
			return nil, err
		}
		if rice.StockAvailable < it.qty {
			return nil, &InsufficientStockError{
				RiceID:      it.riceID,
				RequestedKg: QuintalsToKg(it.qty),
				AvailableKg: QuintalsToKg(rice.StockAvailable),
			}
		}
	}
	for _, it := range items {
		if err := decrementStock(ctx, tx, it.riceID, it.qty); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders SET address_id=$1, status=$2 WHERE order_id=$3`,
		addressID, OrderPaid, orderID); err != nil {
		return nil, err
	}

	var paymentID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO payment_details (order_id, amount, pay_date)
		VALUES ($1, $2, NOW()::TIMESTAMP(0)) RETURNING payment_id`,
		orderID, totalPrice).Scan(&paymentID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &PaymentResult{PaymentID: paymentID, OrderID: orderID, Amount: totalPrice}, nil
}
