package run

import "github.com/shopspring/decimal"

var sixty = decimal.NewFromInt(60)

// RegularPayCents computes round_half_up(minutes / 60 * rateCents).
// Rounding happens exactly once, in integer cents, so run totals stay
// equal to the sum of their line items.
func RegularPayCents(minutes int, rateCents int64) int64 {
	return decimal.NewFromInt(int64(minutes)).
		Mul(decimal.NewFromInt(rateCents)).
		DivRound(sixty, 0).
		IntPart()
}

// OvertimePayCents computes round_half_up(minutes / 60 * rateCents * multiplier).
func OvertimePayCents(minutes int, rateCents int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(int64(minutes)).
		Mul(decimal.NewFromInt(rateCents)).
		Mul(multiplier).
		DivRound(sixty, 0).
		IntPart()
}
