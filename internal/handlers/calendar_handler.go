package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/httpresp"
	ucAvailability "github.com/bienestar-studio/studio-scheduler/internal/usecase/availability"
)

type CalendarHandler struct {
	calendarUC *ucAvailability.GetCalendar
}

func NewCalendarHandler(calendarUC *ucAvailability.GetCalendar) *CalendarHandler {
	return &CalendarHandler{calendarUC: calendarUC}
}

func (h *CalendarHandler) Get(c *gin.Context) {
	calendar, err := h.calendarUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_calendar", "Could not assemble the calendar.")
		return
	}
	httpresp.OK(c, calendar)
}
