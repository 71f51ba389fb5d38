package schedule

import (
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies target to the appointment after checking the state
// machine and the actor's rights.
func Transition(ap *models.Appointment, target State, actor Role, owns bool, now time.Time) error {
	if err := CanTransition(State(ap.State), target, actor, owns); err != nil {
		return err
	}

	ap.State = string(target)
	switch target {
	case StateCanceled:
		ap.CancelledAt = &now
	case StateCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

// SessionType classifies a session length into the stored duration class.
type SessionType string

const (
	SessionSixty  SessionType = "SESSION_60"
	SessionNinety SessionType = "SESSION_90"
)

func SessionTypeFor(minutes int) SessionType {
	if minutes >= 90 {
		return SessionNinety
	}
	return SessionSixty
}

// Span reports the appointment's occupied interval.
func Span(ap *models.Appointment) TimeRange {
	return TimeRange{Start: ap.StartTime, End: ap.EndTime}
}

// BlockWindow reports the interval a blocked slot covers on its day. A
// full-day block spans the entire day.
func BlockWindow(b *models.BlockedSlot) TimeRange {
	if b.FullDay || b.StartTime == nil || b.EndTime == nil {
		day := DayOf(b.Date)
		return TimeRange{Start: day, End: day.AddDate(0, 0, 1)}
	}
	return TimeRange{Start: *b.StartTime, End: *b.EndTime}
}
