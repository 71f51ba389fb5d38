package block

import (
	"context"
	"time"

	"github.com/google/uuid"

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

type CreateBlockInput struct {
	ActorID uint

	Date    string // YYYY-MM-DD
	EndDate string // optional, inclusive; defines a multi-day period

	FullDay   bool
	StartTime string // HH:MM, required unless FullDay
	EndTime   string // HH:MM, required unless FullDay

	Reason string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBlock struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewCreateBlock(
	repo domain.Repository,
	c *cache.Availability,
	dispatcher *audit.Dispatcher,
) *CreateBlock {
	return &CreateBlock{
		repo:  repo,
		cache: c,
		audit: dispatcher,
	}
}

func (uc *CreateBlock) Execute(
	ctx context.Context,
	in CreateBlockInput,
) ([]models.BlockedSlot, error) {

	first, err := parseDay(in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}

	last := first
	if in.EndDate != "" {
		last, err = parseDay(in.EndDate)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date")
		}
		if last.Before(first) {
			return nil, httperr.ErrValidation("invalid_period")
		}
	}

	window, err := parseWindow(in.FullDay, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	// One row per calendar day, correlated by a shared group id so the
	// period can later be removed as a unit.
	groupID := uuid.NewString()
	var blocks []models.BlockedSlot
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		b := models.BlockedSlot{
			GroupID: groupID,
			Date:    day,
			FullDay: in.FullDay,
			Reason:  in.Reason,
		}
		if !in.FullDay {
			start := day.Add(window.start)
			end := day.Add(window.end)
			b.StartTime = &start
			b.EndTime = &end
		}
		blocks = append(blocks, b)
	}

	if err := uc.repo.CreateBlockPeriod(ctx, blocks); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			metrics.ConflictsRejected.WithLabelValues("create_block").Inc()
		}
		return nil, err
	}

	metrics.BlocksCreated.Add(float64(len(blocks)))

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "block_created",
		Entity:   "blocked_slot",
		Metadata: map[string]any{"group_id": groupID, "days": len(blocks)},
	})

	dates := make([]time.Time, 0, len(blocks))
	for _, b := range blocks {
		dates = append(dates, b.Date)
	}
	uc.cache.Invalidate(ctx, dates...)

	return blocks, nil
}
