package ricemill

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// selectVehicle locks and returns a Free vehicle with capacity >= minCapacity.
// Candidates are ordered by last_service_date DESC (most recently serviced
// first) — kept as-is from the dispatch desk's rule, even though spreading
// wear would suggest the opposite order.
func selectVehicle(ctx context.Context, tx pgx.Tx, minCapacity float64) (string, error) {
	var vehicleNumber string
	err := tx.QueryRow(ctx,
		`SELECT vehicle_number FROM vehicle_details
		 WHERE status=$1 AND capacity >= $2
		 ORDER BY last_service_date DESC LIMIT 1 FOR UPDATE`,
		VehicleFree, minCapacity).Scan(&vehicleNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoVehicleAvailable
	}
	return vehicleNumber, err
}

// selectDriver locks and returns any Free driver. No ordering — first
// available is fine.
func selectDriver(ctx context.Context, tx pgx.Tx) (int64, error) {
	var driverID int64
	err := tx.QueryRow(ctx,
		`SELECT driver_id FROM driver_details WHERE status=$1 LIMIT 1 FOR UPDATE`,
		DriverFree).Scan(&driverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoDriverAvailable
	}
	return driverID, err
}

func markVehicleInTransit(ctx context.Context, tx pgx.Tx, vehicleNumber string) error {
	_, err := tx.Exec(ctx,
		`UPDATE vehicle_details SET status=$1 WHERE vehicle_number=$2`,
		VehicleInTransit, vehicleNumber)
	return err
}

func markDriverInWork(ctx context.Context, tx pgx.Tx, driverID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE driver_details SET status=$1 WHERE driver_id=$2`,
		DriverInWork, driverID)
	return err
}
