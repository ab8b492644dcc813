package dto

import (
	"strings"
	"time"

	"vietour/internal/domains/booking/model"
	"vietour/internal/domains/booking/pricing"
	"vietour/shared"
	"vietour/shared/constant"
	gDto "vietour/shared/dto"
	"vietour/shared/failure"
	"vietour/shared/money"
	"vietour/shared/timezone"

	"github.com/shopspring/decimal"
)

const ContactForPricing = "Contact for pricing"

// dateLayouts are tried in order. Layouts without a zone are read in the application timezone.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

type CreateBookingRequest struct {
	TourGuideID string  `json:"tour_guide_id" validate:"required,uuid"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Location    string  `json:"location"      validate:"omitempty,max=255"`
	Notes       *string `json:"notes"         validate:"omitempty,max=1000"`
}

// Window validates the requested time window against now. The checks run in a fixed
// order and the first failing one is reported.
func (c *CreateBookingRequest) Window(now time.Time) (start, end time.Time, err error) {
	if strings.TrimSpace(c.StartDate) == "" || strings.TrimSpace(c.EndDate) == "" || strings.TrimSpace(c.Location) == "" {
		return start, end, failure.Validation("missing required fields")
	}

	start, err = parseDate(c.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = parseDate(c.EndDate)
	if err != nil {
		return start, end, err
	}

	if !start.After(now) {
		return start, end, failure.Validation("start date must be in the future")
	}

	if !end.After(start) {
		return start, end, failure.Validation("end date must be after start date")
	}

	return start, end, nil
}

func (c *CreateBookingRequest) ToModel(id, userID string, start, end time.Time) model.Booking {
	var notes *string

	if c.Notes != nil && strings.TrimSpace(*c.Notes) != "" {
		trimmed := strings.TrimSpace(*c.Notes)
		notes = &trimmed
	}

	return model.Booking{
		ID:          id,
		TourGuideID: c.TourGuideID,
		UserID:      userID,
		StartDate:   start,
		EndDate:     end,
		Location:    strings.TrimSpace(c.Location),
		Notes:       notes,
		Status:      model.StatusPending,
	}
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		if parsed, err := timezone.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, failure.Validation("invalid date format")
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,ci_oneof=pending confirmed completed cancelled"`
}

// PaymentInstruction is the upfront deposit asked for a new booking and what is left to pay after the tour.
type PaymentInstruction struct {
	BookingID          string          `json:"booking_id"`
	Deposit            decimal.Decimal `json:"deposit"`
	Remainder          decimal.Decimal `json:"remainder"`
	Total              decimal.Decimal `json:"total"`
	Currency           string          `json:"currency"`
	FormattedDeposit   string          `json:"formatted_deposit"`
	FormattedRemainder string          `json:"formatted_remainder"`
}

// NewPaymentInstruction returns nil for a booking without a price.
func NewPaymentInstruction(booking model.Booking) *PaymentInstruction {
	if !booking.TotalPrice.Valid {
		return nil
	}

	deposit, remainder := pricing.Split(booking.TotalPrice.Decimal)

	return &PaymentInstruction{
		BookingID:          booking.ID,
		Deposit:            deposit,
		Remainder:          remainder,
		Total:              booking.TotalPrice.Decimal,
		Currency:           booking.Currency,
		FormattedDeposit:   money.Format(deposit, booking.Currency),
		FormattedRemainder: money.Format(remainder, booking.Currency),
	}
}

type BookingResponse struct {
	ID             string           `json:"id"`
	TourGuideID    string           `json:"tour_guide_id"`
	UserID         string           `json:"user_id"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	DurationLabel  string           `json:"duration_label"`
	Location       string           `json:"location"`
	Notes          *string          `json:"notes,omitempty"`
	Status         model.Status     `json:"status"`
	TotalPrice     *decimal.Decimal `json:"total_price"`
	Currency       string           `json:"currency"`
	FormattedTotal string           `json:"formatted_total"`
	Deposit        *decimal.Decimal `json:"deposit,omitempty"`
	Remainder      *decimal.Decimal `json:"remainder,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.TourGuideID = booking.TourGuideID
	r.UserID = booking.UserID
	r.StartDate = timezone.Format(booking.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(booking.EndDate, constant.DateFormat)
	r.DurationLabel = pricing.DurationLabel(booking.StartDate, booking.EndDate)
	r.Location = booking.Location
	r.Notes = booking.Notes
	r.Status = booking.Status
	r.Currency = shared.NormalizeCurrency(booking.Currency, constant.DefaultValueCurrency)
	r.FormattedTotal = ContactForPricing

	if booking.TotalPrice.Valid {
		total := booking.TotalPrice.Decimal
		deposit, remainder := pricing.Split(total)

		r.TotalPrice = &total
		r.Deposit = &deposit
		r.Remainder = &remainder
		r.FormattedTotal = money.Format(total, r.Currency)
	}

	r.Metadata.FromModel(booking.Metadata)
}

type CreateBookingResponse struct {
	Booking BookingResponse     `json:"booking"`
	Payment *PaymentInstruction `json:"payment,omitempty"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
