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

type RescheduleInput struct {
	ActorID   uint
	ActorRole domain.Role

	Date      string // optional, YYYY-MM-DD
	StartHour string // optional, HH:MM
	ServiceID uint   // optional, 0 keeps the current service
}

// Reschedule moves an appointment to a new date, hour or service. Only the
// owning client or an administrator may do it; state never changes here.
type Reschedule struct {
	repo                  domain.Repository
	cache                 *cache.Availability
	audit                 *audit.Dispatcher
	clock                 domain.Clock
	ranges                []domain.WorkingRange
	defaultSessionMinutes int
}

func NewReschedule(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
	clock domain.Clock,
	ranges []domain.WorkingRange,
	defaultSessionMinutes int,
) *Reschedule {
	return &Reschedule{
		repo:                  repo,
		cache:                 c,
		audit:                 dispatcher,
		clock:                 clock,
		ranges:                ranges,
		defaultSessionMinutes: defaultSessionMinutes,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	appointmentID uint,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if in.ActorRole != domain.RoleAdmin && ap.ClientID != in.ActorID {
		return nil, httperr.ErrForbidden("not_owner")
	}

	if domain.Terminal(domain.State(ap.State)) {
		return nil, httperr.ErrConflict("appointment_in_terminal_state")
	}

	dateStr := in.Date
	if dateStr == "" {
		dateStr = ap.StartTime.Format("2006-01-02")
	}
	hourStr := in.StartHour
	if hourStr == "" {
		hourStr = ap.StartTime.Format("15:04")
	}

	start, err := parseDateTime(dateStr, hourStr)
	if err != nil {
		return nil, err
	}

	service := &ap.Service
	if in.ServiceID != 0 && in.ServiceID != ap.ServiceID {
		service, err = uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return nil, err
		}
		if !service.Active {
			return nil, httperr.ErrNotFound("service_not_found")
		}
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
	if !start.After(uc.clock.Now()) {
		return nil, httperr.ErrValidation("slot_in_the_past")
	}

	oldDate := ap.AppointmentDate

	ap.ServiceID = service.ID
	ap.AppointmentDate = domain.DayOf(start)
	ap.StartTime = start
	ap.EndTime = end
	ap.SessionType = string(domain.SessionTypeFor(minutes))

	if err := uc.repo.RescheduleAppointment(ctx, ap); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			metrics.ConflictsRejected.WithLabelValues("reschedule_appointment").Inc()
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.cache.Invalidate(ctx, oldDate, ap.AppointmentDate)

	return ap, nil
}
