package availability

import (
	"context"
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/cache"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
)

type GetAvailableHours struct {
	repo        domain.Repository
	cache       *cache.Availability
	clock       domain.Clock
	ranges      []domain.WorkingRange
	slotMinutes int
}

func NewGetAvailableHours(
	repo domain.Repository,
	c *cache.Availability,
	clock domain.Clock,
	ranges []domain.WorkingRange,
	slotMinutes int,
) *GetAvailableHours {
	return &GetAvailableHours{
		repo:        repo,
		cache:       c,
		clock:       clock,
		ranges:      ranges,
		slotMinutes: slotMinutes,
	}
}

func (uc *GetAvailableHours) Execute(
	ctx context.Context,
	date time.Time,
) ([]string, error) {

	if domain.IsWeekend(date) {
		return []string{}, nil
	}

	// The answer for the current day shifts with the clock inside the cache
	// TTL, so "today" bypasses the date-keyed cache in both directions.
	now := uc.clock.Now()
	today := domain.DayOf(now).Equal(domain.DayOf(date))

	if !today {
		if hours, ok := uc.cache.Get(ctx, date); ok {
			return hours, nil
		}
	}

	blocks, err := uc.repo.ListBlocksForDay(ctx, date)
	if err != nil {
		return nil, err
	}

	// A full-day block empties the day regardless of working ranges.
	for _, b := range blocks {
		if b.FullDay {
			if !today {
				uc.cache.Set(ctx, date, []string{})
			}
			return []string{}, nil
		}
	}

	slots := domain.GenerateSlots(date, uc.ranges, uc.slotMinutes)
	if today {
		slots = domain.FilterElapsed(slots, now)
	}

	appointments, err := uc.repo.ListBlockingAppointmentsForDay(ctx, date)
	if err != nil {
		return nil, err
	}

	hours := make([]string, 0, len(slots))
	for _, slot := range slots {
		taken := false

		for _, ap := range appointments {
			if slot.Overlaps(domain.TimeRange{Start: ap.StartTime, End: ap.EndTime}) {
				taken = true
				break
			}
		}
		if !taken {
			for i := range blocks {
				if slot.Overlaps(domain.BlockWindow(&blocks[i])) {
					taken = true
					break
				}
			}
		}

		if !taken {
			hours = append(hours, slot.Start.Format("15:04"))
		}
	}

	if !today {
		uc.cache.Set(ctx, date, hours)
	}
	return hours, nil
}
