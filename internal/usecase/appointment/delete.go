package appointment

import (
	"context"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	"github.com/bienestar-studio/studio-scheduler/internal/cache"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
)

// DeleteAppointment is admin-only and permanent; there is no soft delete.
type DeleteAppointment struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		cache: c,
		audit: dispatcher,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	actorRole domain.Role,
) error {

	if actorRole != domain.RoleAdmin {
		return httperr.ErrForbidden("admin_only")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	uc.cache.Invalidate(ctx, ap.AppointmentDate)
	return nil
}
