package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DaysRemaining returns the number of whole calendar days from ref until expiry.
// Only the date parts are compared, time of day is ignored.
func DaysRemaining(expiry, ref time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	r := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(r).Hours() / 24)
}

// EffectivePrice computes the sale price of a listing on the given reference date.
// 15 or fewer days before expiry the fifteen-day discount applies, 16..30 days
// before expiry the thirty-day discount, otherwise the base price. An already
// expired listing keeps its base price. The result is rounded half-up to cents.
func EffectivePrice(base decimal.Decimal, expiry time.Time, fifteenDaysDiscount, thirtyDaysDiscount int, ref time.Time) decimal.Decimal {
	days := DaysRemaining(expiry, ref)

	percent := 0
	switch {
	case days < 0:
		// expired, the sweep removes it; no discount here
	case days <= 15:
		percent = fifteenDaysDiscount
	case days <= 30:
		percent = thirtyDaysDiscount
	}

	if percent == 0 {
		return base.Round(2)
	}

	discount := base.Mul(decimal.NewFromInt(int64(percent))).Div(hundred)
	return base.Sub(discount).Round(2)
}
