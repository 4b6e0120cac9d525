package ricemill

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// DeliveryOffset is the fixed window between dispatch start and promised
// delivery (calendar time).
const DeliveryOffset = 48 * time.Hour

type DispatchResult struct {
	OrderID       int64
	VehicleNumber string
	DriverID      int64
	StartDate     time.Time
	DeliveryDate  time.Time
}

// AllocateDispatchTx binds a vehicle and driver to a paid order. Both are
// selected under row locks, so a concurrent allocation for another order
// cannot grab the same vehicle or driver before this transaction finishes.
// No vehicle/driver available is a soft business failure, not a system
// error — the caller tells the salesperson to expect delivery in a week.
func (r *Repo) AllocateDispatchTx(ctx context.Context, orderID int64) (*DispatchResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var requiredCapacity float64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(qi.quantity), 0)
		FROM orders o
		JOIN quotes q ON o.quote_number = q.quote_number
		JOIN quote_items qi ON q.quote_number = qi.quote_number
		WHERE o.order_id = $1`, orderID).Scan(&requiredCapacity)
	if err != nil {
		return nil, err
	}
	if requiredCapacity == 0 {
		// SUM over zero rows; the order does not exist.
		return nil, ErrOrderNotFound
	}

	vehicleNumber, err := selectVehicle(ctx, tx, requiredCapacity)
	if err != nil {
		return nil, err
	}
	driverID, err := selectDriver(ctx, tx)
	if err != nil {
		return nil, err
	}

	startDate := time.Now()
	deliveryDate := startDate.Add(DeliveryOffset)

	if _, err := tx.Exec(ctx, `
		INSERT INTO dispatches (order_id, vehicle_number, driver_id, start_date, delivery_date)
		VALUES ($1, $2, $3, $4, $5)`,
		orderID, vehicleNumber, driverID, startDate, deliveryDate); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET status=$1 WHERE order_id=$2`,
		OrderAllocated, orderID); err != nil {
		return nil, err
	}
	if err := markVehicleInTransit(ctx, tx, vehicleNumber); err != nil {
		return nil, err
	}
	if err := markDriverInWork(ctx, tx, driverID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &DispatchResult{
		OrderID:       orderID,
		VehicleNumber: vehicleNumber,
		DriverID:      driverID,
		StartDate:     startDate,
		DeliveryDate:  deliveryDate,
	}, nil
}
