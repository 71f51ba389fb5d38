package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// From maps a usecase error onto the wire. BusinessError kinds carry their
// own status; storage constraint violations surface as conflicts; anything
// else stays opaque.
func From(c *gin.Context, err error, internalCode, internalMessage string) {
	var be BusinessError
	if errors.As(err, &be) {
		switch be.Kind {
		case KindValidation:
			BadRequest(c, be.Code, messageFor(be.Code))
		case KindNotFound:
			NotFound(c, be.Code, messageFor(be.Code))
		case KindConflict:
			Conflict(c, be.Code, messageFor(be.Code))
		case KindForbidden:
			Forbidden(c, be.Code, messageFor(be.Code))
		default:
			Internal(c, internalCode, internalMessage)
		}
		return
	}

	if IsUniqueViolation(err) || IsExclusionConflict(err) {
		Conflict(c, "slot_already_taken", "The requested slot was just taken.")
		return
	}

	Internal(c, internalCode, internalMessage)
}

var messages = map[string]string{
	"invalid_date":                 "Invalid date, expected YYYY-MM-DD.",
	"invalid_time":                 "Invalid time, expected HH:MM.",
	"invalid_period":               "End date must not be before the start date.",
	"invalid_time_range":           "End time must be after the start time.",
	"invalid_state":                "Unknown appointment state.",
	"invalid_transition":           "The appointment state does not allow this transition.",
	"missing_block_times":          "Partial blocks need both a start and an end time.",
	"appointment_not_found":        "Appointment not found.",
	"service_not_found":            "Service not found.",
	"block_not_found":              "Blocked slot not found.",
	"block_group_not_found":        "Block period not found.",
	"appointment_in_terminal_state": "The appointment already reached a final state.",
	"time_conflict":                "The requested time overlaps an existing appointment.",
	"slot_blocked":                 "The requested time falls inside blocked hours.",
	"day_fully_blocked":            "This day is already fully blocked.",
	"block_overlap":                "A block already exists in this time range.",
	"appointment_in_block_window":  "An active appointment falls inside the requested block.",
	"slot_in_the_past":             "The requested time is in the past.",
	"outside_working_hours":        "The requested time is outside working hours.",
	"not_owner":                    "You can only act on your own appointments.",
	"admin_only":                   "Only administrators can perform this action.",
	"customer_cancel_only":         "Customers can only cancel their own appointments.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Request rejected."
}
