package model

import "time"

type EventType string

const (
	EventCreated       EventType = "booking.created"
	EventStatusChanged EventType = "booking.status_changed"
)

// Event is published on the booking topic, keyed by booking ID.
type Event struct {
	Type        EventType `json:"type"`
	BookingID   string    `json:"booking_id"`
	TourGuideID string    `json:"tour_guide_id"`
	UserID      string    `json:"user_id"`
	From        Status    `json:"from,omitempty"`
	To          Status    `json:"to"`
	Actor       ActorRole `json:"actor,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
