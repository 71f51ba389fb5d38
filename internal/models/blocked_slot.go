package models

import "time"

// BlockedSlot marks a day (or a window within a day) as unavailable for
// booking. Multi-day periods expand into one row per calendar day sharing a
// GroupID, so a whole period can be removed in a single operation.
type BlockedSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GroupID string `gorm:"size:36;index" json:"group_id"`

	Date    time.Time `gorm:"index" json:"date"`
	FullDay bool      `gorm:"default:false" json:"full_day"`

	// Present iff FullDay is false.
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
