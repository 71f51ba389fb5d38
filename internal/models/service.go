package models

import "time"

// Service is a bookable treatment from the studio catalog. The scheduling
// core only reads its id and duration; content fields exist for listing.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description     string `gorm:"type:text" json:"description"`
	DurationMinutes int    `gorm:"default:60" json:"duration_minutes"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
