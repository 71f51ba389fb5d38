package schedule

import "time"

// GenerateSlots enumerates the candidate slots of length slotMinutes for the
// given day. Each working range is walked independently: slots never merge
// across ranges even when adjacent. Emission stops once a slot would start at
// or past the range end. Pure function of its inputs.
func GenerateSlots(date time.Time, ranges []WorkingRange, slotMinutes int) []TimeRange {
	if slotMinutes <= 0 {
		return nil
	}

	step := time.Duration(slotMinutes) * time.Minute
	var slots []TimeRange

	for _, wr := range ranges {
		window := wr.On(date)
		for cur := window.Start; cur.Before(window.End); cur = cur.Add(step) {
			slots = append(slots, TimeRange{Start: cur, End: cur.Add(step)})
		}
	}

	return slots
}

// FilterElapsed drops slots that already started relative to now. Used when
// the requested day is the current day; listing and booking both re-check, so
// a slot expiring between the two surfaces as a conflict, not a stale hit.
func FilterElapsed(slots []TimeRange, now time.Time) []TimeRange {
	kept := make([]TimeRange, 0, len(slots))
	for _, s := range slots {
		if s.Start.After(now) {
			kept = append(kept, s)
		}
	}
	return kept
}
