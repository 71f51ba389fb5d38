package schedule

import (
	"fmt"
	"strings"
	"time"
)

// WorkingRange is a daily working window expressed in minutes from midnight,
// half-open [Start, End).
type WorkingRange struct {
	Start int
	End   int
}

// On materializes the range on a concrete calendar day.
func (w WorkingRange) On(date time.Time) TimeRange {
	day := DayOf(date)
	return TimeRange{
		Start: day.Add(time.Duration(w.Start) * time.Minute),
		End:   day.Add(time.Duration(w.End) * time.Minute),
	}
}

// ParseWorkingRanges parses a config string like "10:00-14:00,17:00-22:00".
func ParseWorkingRanges(s string) ([]WorkingRange, error) {
	var ranges []WorkingRange

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("working range %q: want HH:MM-HH:MM", part)
		}

		start, err := parseMinutes(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("working range %q: %w", part, err)
		}
		end, err := parseMinutes(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("working range %q: %w", part, err)
		}
		if end <= start {
			return nil, fmt.Errorf("working range %q: end before start", part)
		}

		ranges = append(ranges, WorkingRange{Start: start, End: end})
	}

	return ranges, nil
}

func parseMinutes(hm string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WithinWorkingRanges reports whether rng fits entirely inside one of the
// configured working windows on its own day.
func WithinWorkingRanges(rng TimeRange, ranges []WorkingRange) bool {
	for _, wr := range ranges {
		window := wr.On(rng.Start)
		if !rng.Start.Before(window.Start) && !rng.End.After(window.End) {
			return true
		}
	}
	return false
}

// IsWeekend reports whether the studio is closed for the whole day. The
// business keeps a single timeline and never opens on weekends.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
