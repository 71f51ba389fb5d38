package appointment

import (
	"context"
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	"github.com/bienestar-studio/studio-scheduler/internal/cache"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/metrics"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	ServiceID uint

	Date      string // YYYY-MM-DD
	StartHour string // HH:MM, one of the advertised available hours
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo                  domain.Repository
	cache                 *cache.Availability
	audit                 *audit.Dispatcher
	clock                 domain.Clock
	ranges                []domain.WorkingRange
	defaultSessionMinutes int
}

func NewCreateAppointment(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
	clock domain.Clock,
	ranges []domain.WorkingRange,
	defaultSessionMinutes int,
) *CreateAppointment {
	return &CreateAppointment{
		repo:                  repo,
		cache:                 c,
		audit:                 dispatcher,
		clock:                 clock,
		ranges:                ranges,
		defaultSessionMinutes: defaultSessionMinutes,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, err := parseDateTime(in.Date, in.StartHour)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	minutes := service.DurationMinutes
	if minutes <= 0 {
		minutes = uc.defaultSessionMinutes
	}
	end := start.Add(time.Duration(minutes) * time.Minute)
	rng := domain.TimeRange{Start: start, End: end}

	if domain.IsWeekend(start) || !domain.WithinWorkingRanges(rng, uc.ranges) {
		return nil, httperr.ErrValidation("outside_working_hours")
	}

	// Listing already filters elapsed slots, but time passes between listing
	// and booking; re-validate against the clock here.
	if !start.After(uc.clock.Now()) {
		return nil, httperr.ErrValidation("slot_in_the_past")
	}

	ap := &models.Appointment{
		ClientID:        in.ClientID,
		ServiceID:       service.ID,
		AppointmentDate: domain.DayOf(start),
		StartTime:       start,
		EndTime:         end,
		State:           string(domain.InitialState()),
		SessionType:     string(domain.SessionTypeFor(minutes)),
	}

	if err := uc.repo.ReserveAppointment(ctx, ap); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			metrics.ConflictsRejected.WithLabelValues("create_appointment").Inc()
			uc.audit.Dispatch(audit.Event{
				UserID:   &in.ClientID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"start": start, "end": end},
			})
		}
		return nil, err
	}

	metrics.AppointmentsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.cache.Invalidate(ctx, ap.AppointmentDate)

	return ap, nil
}
