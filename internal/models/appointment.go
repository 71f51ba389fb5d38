package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"uniqueIndex:idx_client_day_start,priority:1" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// AppointmentDate is the day bucket (time of day zeroed); StartTime and
	// EndTime are the absolute bounds of the session.
	AppointmentDate time.Time `gorm:"uniqueIndex:idx_client_day_start,priority:2" json:"appointment_date"`
	StartTime       time.Time `gorm:"uniqueIndex:idx_client_day_start,priority:3" json:"start_time"`
	EndTime         time.Time `json:"end_time"`

	State       string `gorm:"size:20;default:'PENDING'" json:"state"`
	SessionType string `gorm:"size:20" json:"session_type"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
