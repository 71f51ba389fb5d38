package block

import (
	"context"
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	"github.com/bienestar-studio/studio-scheduler/internal/cache"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
)

// DeleteBlock removes a single day's record; removing a restriction cannot
// create a conflict, so no re-check is needed.
type DeleteBlock struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewDeleteBlock(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
) *DeleteBlock {
	return &DeleteBlock{
		repo:  repo,
		cache: c,
		audit: dispatcher,
	}
}

func (uc *DeleteBlock) Execute(ctx context.Context, actorID, id uint) error {
	existing, err := uc.repo.GetBlock(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteBlock(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "block_deleted",
		Entity:   "blocked_slot",
		EntityID: &id,
	})

	uc.cache.Invalidate(ctx, existing.Date)
	return nil
}

// DeleteBlockGroup removes every day of a period in one operation.
type DeleteBlockGroup struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewDeleteBlockGroup(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
) *DeleteBlockGroup {
	return &DeleteBlockGroup{
		repo:  repo,
		cache: c,
		audit: dispatcher,
	}
}

func (uc *DeleteBlockGroup) Execute(
	ctx context.Context,
	actorID uint,
	groupID string,
) (int64, error) {

	blocks, err := uc.repo.ListBlocksByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}

	removed, err := uc.repo.DeleteBlockGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "block_group_deleted",
		Entity:   "blocked_slot",
		Metadata: map[string]any{"group_id": groupID, "days": removed},
	})

	dates := make([]time.Time, 0, len(blocks))
	for _, b := range blocks {
		dates = append(dates, b.Date)
	}
	uc.cache.Invalidate(ctx, dates...)

	return removed, nil
}
