package dto

import (
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type CalendarAppointmentDTO struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"appointment_date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ServiceName string    `json:"service_name"`
}

type CalendarDTO struct {
	Appointments []CalendarAppointmentDTO `json:"appointments"`
	BlockedSlots []models.BlockedSlot     `json:"blockedSlots"`
}
