package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventTypeBookingCreated  EventType = "BOOKING_CREATED"
	EventTypeBookingCanceled EventType = "BOOKING_CANCELED"
)

func (t EventType) IsValid() bool {
	return t == EventTypeBookingCreated || t == EventTypeBookingCanceled
}

// BookingEvent is published after a booking lifecycle change has been committed
type BookingEvent struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	BookingID  uuid.UUID       `json:"booking_id"`
	VenueID    uuid.UUID       `json:"venue_id"`
	PackageID  *uuid.UUID      `json:"package_id,omitempty"`
	UserID     uuid.UUID       `json:"user_id"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Status     string          `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewBookingEvent stamps a fresh id and occurrence time
func NewBookingEvent(eventType EventType, bookingID, venueID, userID uuid.UUID) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  bookingID,
		VenueID:    venueID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// GetPartitionKey keeps every event of one venue on the same partition
func (e *BookingEvent) GetPartitionKey() string {
	return e.VenueID.String()
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ParseBookingEvent(data []byte) (*BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking event: %w", err)
	}
	if !event.Type.IsValid() {
		return nil, fmt.Errorf("unknown booking event type %q", event.Type)
	}
	if event.BookingID == uuid.Nil {
		return nil, fmt.Errorf("booking event %s has no booking id", event.ID)
	}
	return &event, nil
}
