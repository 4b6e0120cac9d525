package ricemill

// QuoteLineInput is a raw submitted line item in UI units: price per
// 25 kg bag, quantity in bags.
type QuoteLineInput struct {
	RiceID      int64   `json:"rice_id"`
	QuotedPrice float64 `json:"quoted_price"`
	Quantity    float64 `json:"quantity"`
}

// QuoteLine is a normalized line item in canonical units.
type QuoteLine struct {
	RiceID           int64
	PricePerQuintal  float64
	QuantityQuintals float64
}

func NormalizeLine(in QuoteLineInput) QuoteLine {
	return QuoteLine{
		RiceID:           in.RiceID,
		PricePerQuintal:  PricePerQuintal(in.QuotedPrice),
		QuantityQuintals: BagsToQuintals(in.Quantity),
	}
}

// Amount is the line's contribution to the quote total.
func (l QuoteLine) Amount() float64 {
	return l.PricePerQuintal * l.QuantityQuintals
}

// CheckStock returns a structured shortfall error if the line asks for
// more than is available, nil otherwise.
func (l QuoteLine) CheckStock(stockAvailable float64) *InsufficientStockError {
	if l.QuantityQuintals > stockAvailable {
		return &InsufficientStockError{
			RiceID:      l.RiceID,
			RequestedKg: QuintalsToKg(l.QuantityQuintals),
			AvailableKg: QuintalsToKg(stockAvailable),
		}
	}
	return nil
}

// WithinBounds reports whether the normalized price falls inside the rice
// item's configured [min, max] per-quintal band. A line outside the band
// does not fail the quote, it only blocks auto-approval.
func (l QuoteLine) WithinBounds(minPrice, maxPrice float64) bool {
	return l.PricePerQuintal >= minPrice && l.PricePerQuintal <= maxPrice
}
