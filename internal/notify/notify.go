package notify

import (
	"context"
	"time"
)

const (
	TypeBookingCreated       = "booking_created"
	TypeBookingStatusChanged = "booking_status_changed"
)

type Notification struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Channel    string    `json:"channel"`
	ProviderID uint      `json:"provider_id"`
	BookingID  uint      `json:"booking_id"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier accepts a notification without blocking the caller; delivery is
// best effort.
type Notifier interface {
	Notify(n Notification)
}

// Sender performs the actual delivery.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}
