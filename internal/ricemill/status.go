package ricemill

type QuoteStatus string

const (
	QuotePending  QuoteStatus = "Pending"
	QuoteApproved QuoteStatus = "Approved"
	QuoteRejected QuoteStatus = "Rejected"
)

type OrderStatus string

const (
	OrderWaiting   OrderStatus = "Waiting"
	OrderPaid      OrderStatus = "Paid"
	OrderAllocated OrderStatus = "Allocated"
	OrderDelivered OrderStatus = "Delivered"
)

// The order lifecycle is strictly linear: Waiting -> Paid -> Allocated -> Delivered.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderWaiting:   {OrderPaid: true},
	OrderPaid:      {OrderAllocated: true},
	OrderAllocated: {OrderDelivered: true},
	OrderDelivered: {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

type VehicleStatus string

const (
	VehicleFree      VehicleStatus = "Free"
	VehicleInTransit VehicleStatus = "InTransit"
)

type DriverStatus string

const (
	DriverFree   DriverStatus = "Free"
	DriverInWork DriverStatus = "InWork"
)

type DecisionAction string

const (
	ActionApprove DecisionAction = "Approve"
	ActionReject  DecisionAction = "Reject"
)
