package availability

import (
	"context"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/dto"
)

// GetCalendar assembles the admin calendar view: every confirmed
// appointment plus every blocked slot.
type GetCalendar struct {
	repo domain.Repository
}

func NewGetCalendar(repo domain.Repository) *GetCalendar {
	return &GetCalendar{repo: repo}
}

func (uc *GetCalendar) Execute(ctx context.Context) (*dto.CalendarDTO, error) {
	appointments, err := uc.repo.ListConfirmedAppointments(ctx)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocks(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.CalendarDTO{
		Appointments: make([]dto.CalendarAppointmentDTO, 0, len(appointments)),
		BlockedSlots: blocks,
	}

	for _, ap := range appointments {
		out.Appointments = append(out.Appointments, dto.CalendarAppointmentDTO{
			ID:          ap.ID,
			Date:        ap.AppointmentDate,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			ClientName:  ap.Client.Name,
			ClientEmail: ap.Client.Email,
			ServiceName: ap.Service.Name,
		})
	}

	return out, nil
}
