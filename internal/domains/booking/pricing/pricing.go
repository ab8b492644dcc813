// Package pricing computes booking prices and their display helpers. Every function is pure.
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

var (
	nanosPerHour = decimal.NewFromInt(int64(time.Hour))
	half         = decimal.RequireFromString("0.5")
)

// Hours is the fractional number of hours between start and end.
func Hours(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(end.Sub(start))).Div(nanosPerHour)
}

// TotalPrice is hours times the hourly rate. A missing rate yields a missing price.
func TotalPrice(start, end time.Time, hourlyRate decimal.NullDecimal) decimal.NullDecimal {
	if !hourlyRate.Valid {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(Hours(start, end).Mul(hourlyRate.Decimal))
}

// Split divides total into an upfront deposit and the remainder due after the tour.
// deposit + remainder always equals total.
func Split(total decimal.Decimal) (deposit, remainder decimal.Decimal) {
	deposit = total.Mul(half)
	remainder = total.Sub(deposit)

	return deposit, remainder
}

// DurationLabel renders the rounded length of a booking, e.g. "3 hours", "1 day" or "2 days 5h".
func DurationLabel(start, end time.Time) string {
	hours := int(math.Round(end.Sub(start).Hours()))

	if hours < hoursPerDay {
		if hours == 1 {
			return "1 hour"
		}

		return fmt.Sprintf("%d hours", hours)
	}

	days, rest := hours/hoursPerDay, hours%hoursPerDay

	label := "1 day"
	if days != 1 {
		label = fmt.Sprintf("%d days", days)
	}

	if rest > 0 {
		label += fmt.Sprintf(" %dh", rest)
	}

	return label
}
