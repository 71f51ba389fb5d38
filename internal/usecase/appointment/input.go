package appointment

import (
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
)

func parseDateTime(dateStr, hourStr string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}

	hm, err := time.Parse("15:04", hourStr)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_time")
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		hm.Hour(), hm.Minute(), 0, 0,
		day.Location(),
	), nil
}
