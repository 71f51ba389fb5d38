package appointment

import (
	"context"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	"github.com/bienestar-studio/studio-scheduler/internal/cache"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/metrics"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type TransitionInput struct {
	ActorID   uint
	ActorRole domain.Role
	Target    domain.State
}

// TransitionState drives the appointment state machine: confirm, cancel,
// complete or mark a no-show, gated by role and ownership.
type TransitionState struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
	clock domain.Clock
}

func NewTransitionState(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
	clock domain.Clock,
) *TransitionState {
	return &TransitionState{
		repo:  repo,
		cache: c,
		audit: dispatcher,
		clock: clock,
	}
}

func (uc *TransitionState) Execute(
	ctx context.Context,
	appointmentID uint,
	in TransitionInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	owns := ap.ClientID == in.ActorID
	if err := domain.Transition(ap, in.Target, in.ActorRole, owns, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.AppointmentTransitions.WithLabelValues(string(in.Target)).Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_" + actionName(in.Target),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// Cancellations and no-shows free the slot for other clients.
	if !domain.Blocking(in.Target) {
		uc.cache.Invalidate(ctx, ap.AppointmentDate)
	}

	return ap, nil
}

func actionName(s domain.State) string {
	switch s {
	case domain.StateConfirmed:
		return "confirmed"
	case domain.StateCanceled:
		return "cancelled"
	case domain.StateCompleted:
		return "completed"
	case domain.StateNotAssisted:
		return "marked_no_show"
	}
	return "transitioned"
}
