// Package pricing implements the per-pair-of-guests tour pricing rule.
// The quoted tour price covers a party of exactly 2; larger parties pay
// per started pair, and a solo traveler pays the pair price.
package pricing

// BillableUnits maps a guest count to the pricing denominator:
// ceil(guests/2), floored at 1.
func BillableUnits(guests int) int {
	if guests <= 2 {
		return 1
	}
	return (guests + 1) / 2
}

// Total computes the amount to capture for a party. basePrice is the
// whole-EUR price quoted for 2 guests.
func Total(basePrice, guests int) int {
	return basePrice * BillableUnits(guests)
}
