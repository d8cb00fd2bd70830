package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint `gorm:"index:idx_bookings_provider_date,priority:1" json:"provider_id"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	// Date and Time are provider-local wall clock values.
	Date            string `gorm:"size:10;not null;index:idx_bookings_provider_date,priority:2" json:"date"`
	Time            string `gorm:"size:5;not null" json:"time"`
	DurationMinutes int    `json:"duration_minutes"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
