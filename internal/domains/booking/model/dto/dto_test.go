package dto_test

import (
	"testing"
	"time"

	"vietour/internal/domains/booking/model"
	"vietour/internal/domains/booking/model/dto"
	"vietour/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)

func TestCreateBookingRequest_Window(t *testing.T) {
	future := now.Add(2 * time.Hour).Format(time.RFC3339)
	later := now.Add(5 * time.Hour).Format(time.RFC3339)
	past := now.Add(-time.Hour).Format(time.RFC3339)

	tests := []struct {
		name          string
		request       dto.CreateBookingRequest
		expectedError string
	}{
		{
			name:          "missing start date",
			request:       dto.CreateBookingRequest{EndDate: later, Location: "Hoi An"},
			expectedError: "missing required fields",
		},
		{
			name:          "blank location",
			request:       dto.CreateBookingRequest{StartDate: future, EndDate: later, Location: "   "},
			expectedError: "missing required fields",
		},
		{
			name:          "missing fields win over past start",
			request:       dto.CreateBookingRequest{StartDate: past, EndDate: past},
			expectedError: "missing required fields",
		},
		{
			name:          "unparseable date",
			request:       dto.CreateBookingRequest{StartDate: "tomorrow", EndDate: later, Location: "Hue"},
			expectedError: "invalid date format",
		},
		{
			name:          "start in the past",
			request:       dto.CreateBookingRequest{StartDate: past, EndDate: later, Location: "Hue"},
			expectedError: "start date must be in the future",
		},
		{
			name:          "start equal to now",
			request:       dto.CreateBookingRequest{StartDate: now.Format(time.RFC3339), EndDate: later, Location: "Hue"},
			expectedError: "start date must be in the future",
		},
		{
			name:          "past start wins over inverted window",
			request:       dto.CreateBookingRequest{StartDate: past, EndDate: now.Add(-2 * time.Hour).Format(time.RFC3339), Location: "Hue"},
			expectedError: "start date must be in the future",
		},
		{
			name:          "end equal to start",
			request:       dto.CreateBookingRequest{StartDate: future, EndDate: future, Location: "Hue"},
			expectedError: "end date must be after start date",
		},
		{
			name:          "end before start",
			request:       dto.CreateBookingRequest{StartDate: later, EndDate: future, Location: "Hue"},
			expectedError: "end date must be after start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.request.Window(now)

			require.Error(t, err)
			assert.Equal(t, tt.expectedError, err.Error())
			assert.True(t, failure.IsKind(err, failure.KindValidation))
		})
	}

	t.Run("valid window", func(t *testing.T) {
		request := dto.CreateBookingRequest{StartDate: future, EndDate: later, Location: "Ha Long Bay"}

		start, end, err := request.Window(now)

		require.NoError(t, err)
		assert.True(t, start.Equal(now.Add(2*time.Hour)))
		assert.Equal(t, 3*time.Hour, end.Sub(start))
	})
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	notes := "  vegetarian lunch  "
	blank := "  "

	request := dto.CreateBookingRequest{TourGuideID: "guide-1", Location: " Sapa ", Notes: &notes}
	booking := request.ToModel("booking-1", "user-1", now, now.Add(time.Hour))

	assert.Equal(t, "booking-1", booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "Sapa", booking.Location)
	assert.Equal(t, model.StatusPending, booking.Status)
	require.NotNil(t, booking.Notes)
	assert.Equal(t, "vegetarian lunch", *booking.Notes)

	request.Notes = &blank
	assert.Nil(t, request.ToModel("booking-1", "user-1", now, now.Add(time.Hour)).Notes)
}

func TestBookingResponse_FromModel(t *testing.T) {
	t.Run("priced booking", func(t *testing.T) {
		var response dto.BookingResponse

		response.FromModel(model.Booking{
			ID:         "b-1",
			StartDate:  now,
			EndDate:    now.Add(3 * time.Hour),
			Status:     model.StatusConfirmed,
			TotalPrice: decimal.NewNullDecimal(decimal.NewFromInt(60)),
			Currency:   "usd",
		})

		assert.Equal(t, "3 hours", response.DurationLabel)
		assert.Equal(t, "USD", response.Currency)
		assert.Contains(t, response.FormattedTotal, "60.00")
		require.NotNil(t, response.Deposit)
		assert.Equal(t, "30.00", response.Deposit.StringFixed(2))
		assert.Equal(t, "30.00", response.Remainder.StringFixed(2))
	})

	t.Run("priceless booking", func(t *testing.T) {
		var response dto.BookingResponse

		response.FromModel(model.Booking{ID: "b-2", StartDate: now, EndDate: now.Add(30 * time.Hour)})

		assert.Equal(t, dto.ContactForPricing, response.FormattedTotal)
		assert.Equal(t, "1 day 6h", response.DurationLabel)
		assert.Nil(t, response.TotalPrice)
		assert.Nil(t, response.Deposit)
		assert.Equal(t, "USD", response.Currency)
	})
}

func TestNewPaymentInstruction(t *testing.T) {
	assert.Nil(t, dto.NewPaymentInstruction(model.Booking{ID: "b-1"}))

	payment := dto.NewPaymentInstruction(model.Booking{
		ID:         "b-1",
		TotalPrice: decimal.NewNullDecimal(decimal.RequireFromString("2400000")),
		Currency:   "VND",
	})

	require.NotNil(t, payment)
	assert.Equal(t, "b-1", payment.BookingID)
	assert.True(t, payment.Deposit.Add(payment.Remainder).Equal(payment.Total))
	assert.Equal(t, "1200000", payment.Deposit.String())
	assert.Contains(t, payment.FormattedDeposit, "1,200,000")
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	var response dto.GetBookingsResponse

	response.FromModels([]model.Booking{{ID: "a", StartDate: now, EndDate: now.Add(time.Hour)}}, 21, 10)

	assert.Equal(t, 21, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Len(t, response.Bookings, 1)
	assert.Equal(t, "1 hour", response.Bookings[0].DurationLabel)
}
