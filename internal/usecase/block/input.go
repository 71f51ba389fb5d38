package block

import (
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
)

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

type blockWindow struct {
	start time.Duration // offset from midnight
	end   time.Duration
}

// parseWindow validates the partial-block time window. Full-day blocks carry
// no window at all.
func parseWindow(fullDay bool, startHM, endHM string) (blockWindow, error) {
	if fullDay {
		return blockWindow{}, nil
	}

	if startHM == "" || endHM == "" {
		return blockWindow{}, httperr.ErrValidation("missing_block_times")
	}

	start, err := parseClock(startHM)
	if err != nil {
		return blockWindow{}, httperr.ErrValidation("invalid_time")
	}
	end, err := parseClock(endHM)
	if err != nil {
		return blockWindow{}, httperr.ErrValidation("invalid_time")
	}
	if end <= start {
		return blockWindow{}, httperr.ErrValidation("invalid_time_range")
	}

	return blockWindow{start: start, end: end}, nil
}

func parseClock(hm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
