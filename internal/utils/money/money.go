// Package money holds shared monetary calculation rules so that services
// and repositories derive figures identically.
package money

import "github.com/shopspring/decimal"

// MinorUnitPlaces is the currency's minor unit precision.
const MinorUnitPlaces = 2

// RoundMinor rounds half-up to the currency's minor unit. Intermediate
// arithmetic stays at full precision; rounding applies only at display
// boundaries (change, percentage splits).
func RoundMinor(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnitPlaces)
}

// ChangeDue is the change owed to the buyer: max(0, paid - total),
// rounded to the minor unit.
func ChangeDue(totalAmount, amountPaid decimal.Decimal) decimal.Decimal {
	change := amountPaid.Sub(totalAmount)
	if change.IsNegative() {
		return decimal.Zero
	}
	return RoundMinor(change)
}

// Outstanding is the unpaid remainder: max(0, total - paid).
func Outstanding(totalAmount, amountPaid decimal.Decimal) decimal.Decimal {
	due := totalAmount.Sub(amountPaid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Canonical returns the plain-string decimal representation written to
// storage; parsing it back with decimal.NewFromString is lossless.
func Canonical(d decimal.Decimal) string {
	return d.String()
}
