package ricemill

import "time"

type RiceItem struct {
	RiceID         int64
	RiceName       string
	Description    string
	StockAvailable float64 // quintals
	MinPrice       float64 // per quintal
	MaxPrice       float64 // per quintal
}

type Quote struct {
	QuoteNumber   int64
	SalesPersonID int64
	Status        QuoteStatus
	CreatedAt     time.Time
}

type QuoteItem struct {
	ID          int64
	QuoteNumber int64
	RiceID      int64
	QuotedPrice float64 // per quintal, normalized at submission
	Quantity    float64 // quintals
}

type Order struct {
	OrderID     int64
	QuoteNumber int64
	TotalPrice  float64
	Status      OrderStatus
	OrderDate   time.Time
	AddressID   *int64
}

type PaymentDetail struct {
	PaymentID int64
	OrderID   int64
	Amount    float64
	PayDate   time.Time
}

type Vehicle struct {
	VehicleNumber   string
	Capacity        float64 // quintals
	Status          VehicleStatus
	LastServiceDate time.Time
}

type Driver struct {
	DriverID   int64
	DriverName string
	Status     DriverStatus
}

type Dispatch struct {
	DispatchID    int64
	OrderID       int64
	VehicleNumber string
	DriverID      int64
	StartDate     time.Time
	DeliveryDate  time.Time
}
