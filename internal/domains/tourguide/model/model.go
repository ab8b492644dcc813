package model

import (
	"vietour/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "tour_guides"
	EntityName = "tour_guide"

	FieldID     = "id"
	FieldUserID = "user_id"
)

// TourGuide is owned by the guide directory. This service only reads it.
type TourGuide struct {
	ID         string              `db:"id"`
	UserID     string              `db:"user_id"`
	Name       string              `db:"name"`
	HourlyRate decimal.NullDecimal `db:"hourly_rate"`
	Currency   *string             `db:"currency"`
	model.Metadata
}

// CurrencyOr returns the guide's pricing currency, or fallback when none is set.
func (t TourGuide) CurrencyOr(fallback string) string {
	if t.Currency == nil || *t.Currency == "" {
		return fallback
	}

	return *t.Currency
}
