package ricemill

// Canonical quantity unit is the quintal (100 kg). Salespeople quote in
// 25 kg bags with a price per bag, so both get normalized once at the
// submission boundary and everything downstream stays in quintals.
const (
	KgPerQuintal = 100.0
	KgPerBag     = 25.0
)

// PricePerQuintal converts a quoted per-bag price to a per-quintal price.
func PricePerQuintal(pricePerBag float64) float64 {
	return pricePerBag * (KgPerQuintal / KgPerBag)
}

// BagsToQuintals converts a bag count to quintals.
func BagsToQuintals(bags float64) float64 {
	return bags * KgPerBag / KgPerQuintal
}

func QuintalsToKg(q float64) float64 {
	return q * KgPerQuintal
}
