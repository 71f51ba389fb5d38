package schedule

import "time"

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r TimeRange) Valid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports strict interval intersection. Touching endpoints (one
// range ending exactly when the other begins) do not overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

// DayOf truncates t to its calendar day in the same location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
