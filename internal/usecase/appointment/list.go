package appointment

import (
	"context"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type AppointmentPage struct {
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
	Total        int64                `json:"total"`
	TotalPages   int64                `json:"totalPages"`
	Appointments []models.Appointment `json:"appointments"`
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.AppointmentFilter,
) (*AppointmentPage, error) {

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	aps, total, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		totalPages++
	}

	return &AppointmentPage{
		Page:         filter.Page,
		Limit:        filter.Limit,
		Total:        total,
		TotalPages:   totalPages,
		Appointments: aps,
	}, nil
}
