package money

import (
	"strings"
	"sync/atomic"

	"vietour/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var locale atomic.Value

func init() {
	locale.Store(language.AmericanEnglish)
}

// SetLocale changes the locale used by Format. Unknown tags keep the current locale.
func SetLocale(tag string) {
	parsed, err := language.Parse(tag)
	if err != nil {
		log.Error().Err(err).Str("locale", tag).Msg("Failed to parse locale, keeping current one")

		return
	}

	locale.Store(parsed)
}

// Unit resolves an ISO 4217 code, falling back to USD for blank or unknown codes.
func Unit(code string) currency.Unit {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = constant.DefaultValueCurrency
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.USD
	}

	return unit
}

// Format renders amount with the currency symbol and the standard number of minor units,
// e.g. "$60.00" or "₫2,400,000" in en-US.
func Format(amount decimal.Decimal, code string) string {
	unit := Unit(code)
	scale, _ := currency.Standard.Rounding(unit)

	printer := message.NewPrinter(locale.Load().(language.Tag)) //nolint:forcetypeassert

	value, _ := amount.Round(int32(scale)).Float64() //nolint:gosec

	return printer.Sprint(currency.Symbol(unit)) + printer.Sprint(number.Decimal(value, number.Scale(scale)))
}
