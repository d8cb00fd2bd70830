package models

import (
	"time"

	"gorm.io/datatypes"
)

// Provider is the schedulable resource: one provider, one agenda.
type Provider struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// WorkSchedule is kept opaque; see schedule.Parse.
	WorkSchedule datatypes.JSON `gorm:"type:jsonb" json:"work_schedule"`

	NotifyChannel     string `gorm:"size:100" json:"notify_channel"`
	MinAdvanceMinutes int    `gorm:"default:0" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
