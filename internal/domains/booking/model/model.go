package model

import (
	"time"

	"vietour/shared/constant"
	"vietour/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldTourGuideID = "tour_guide_id"
	FieldUserID      = "user_id"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldLocation    = "location"
	FieldNotes       = "notes"
	FieldStatus      = "status"
	FieldTotalPrice  = "total_price"
	FieldCurrency    = "currency"
)

// SortableFields are the columns a booking list may be ordered by.
var SortableFields = []string{FieldStartDate, FieldEndDate, FieldStatus, constant.FieldCreatedAt, constant.FieldUpdatedAt}

// Booking reserves a tour guide's time for a client. TotalPrice is null when the guide
// has no hourly rate.
type Booking struct {
	ID          string              `db:"id"`
	TourGuideID string              `db:"tour_guide_id"`
	UserID      string              `db:"user_id"`
	StartDate   time.Time           `db:"start_date"`
	EndDate     time.Time           `db:"end_date"`
	Location    string              `db:"location"`
	Notes       *string             `db:"notes"`
	Status      Status              `db:"status"`
	TotalPrice  decimal.NullDecimal `db:"total_price"`
	Currency    string              `db:"currency"`
	model.Metadata
}
