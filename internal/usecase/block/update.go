package block

import (
	"context"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	"github.com/bienestar-studio/studio-scheduler/internal/cache"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type UpdateBlockInput struct {
	ActorID uint

	Date      string // YYYY-MM-DD
	FullDay   bool
	StartTime string // HH:MM, required unless FullDay
	EndTime   string // HH:MM, required unless FullDay
	Reason    string
}

// UpdateBlock rewrites a single day's record. Editing a whole period means
// editing each day or recreating the group.
type UpdateBlock struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewUpdateBlock(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
) *UpdateBlock {
	return &UpdateBlock{
		repo:  repo,
		cache: c,
		audit: dispatcher,
	}
}

func (uc *UpdateBlock) Execute(
	ctx context.Context,
	id uint,
	in UpdateBlockInput,
) (*models.BlockedSlot, error) {

	existing, err := uc.repo.GetBlock(ctx, id)
	if err != nil {
		return nil, err
	}

	day := existing.Date
	if in.Date != "" {
		day, err = parseDay(in.Date)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date")
		}
	}

	window, err := parseWindow(in.FullDay, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	oldDate := existing.Date

	existing.Date = day
	existing.FullDay = in.FullDay
	existing.Reason = in.Reason
	existing.StartTime = nil
	existing.EndTime = nil
	if !in.FullDay {
		start := domain.DayOf(day).Add(window.start)
		end := domain.DayOf(day).Add(window.end)
		existing.StartTime = &start
		existing.EndTime = &end
	}

	if err := uc.repo.UpdateBlockChecked(ctx, existing); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "block_updated",
		Entity:   "blocked_slot",
		EntityID: &existing.ID,
	})

	uc.cache.Invalidate(ctx, oldDate, existing.Date)

	return existing, nil
}
