package ricemill

import "strconv"

const (
	TopicQuoteSubmitted    = "ricemill.quote.submitted"
	TopicQuoteDecided      = "ricemill.quote.decided"
	TopicOrderPaid         = "ricemill.order.paid"
	TopicDispatchScheduled = "ricemill.order.dispatched"
)

// Partition key = correlation id (quote number / order id), supaya semua
// event untuk satu aggregate maintain urutan.
func PartitionKey(id int64) []byte {
	return []byte(strconv.FormatInt(id, 10))
}
