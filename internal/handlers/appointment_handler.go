package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/httpresp"
	ucAppointment "github.com/bienestar-studio/studio-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	rescheduleUC *ucAppointment.Reschedule
	transitionUC *ucAppointment.TransitionState
	deleteUC     *ucAppointment.DeleteAppointment
	getUC        *ucAppointment.GetAppointment
	listUC       *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.Reschedule,
	transitionUC *ucAppointment.TransitionState,
	deleteUC *ucAppointment.DeleteAppointment,
	getUC *ucAppointment.GetAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		transitionUC: transitionUC,
		deleteUC:     deleteUC,
		getUC:        getUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartHour string `json:"start_hour" binding:"required"`
}

type RescheduleRequest struct {
	Date      string `json:"date"`
	StartHour string `json:"start_hour"`
	ServiceID uint   `json:"service_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, _ := actor(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:  userID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartHour: req.StartHour,
	})
	if err != nil {
		httperr.From(c, err, "failed_to_create_appointment", "Could not create the appointment.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	userID, role := actor(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), id, userID, role)
	if err != nil {
		httperr.From(c, err, "failed_to_get_appointment", "Could not load the appointment.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, _ := actor(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.listUC.Execute(c.Request.Context(), domain.AppointmentFilter{
		ClientID: userID,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.OK(c, result)
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	clientID, _ := strconv.Atoi(c.DefaultQuery("clientId", "0"))

	result, err := h.listUC.Execute(c.Request.Context(), domain.AppointmentFilter{
		ClientID: uint(clientID),
		State:    c.Query("state"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID, role := actor(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	if req.Date == "" && req.StartHour == "" && req.ServiceID == 0 {
		httperr.BadRequest(c, "empty_update", "No fields provided for update.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), id, ucAppointment.RescheduleInput{
		ActorID:   userID,
		ActorRole: role,
		Date:      req.Date,
		StartHour: req.StartHour,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		httperr.From(c, err, "failed_to_update_appointment", "Could not update the appointment.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, domain.StateConfirmed)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, domain.StateCanceled)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, domain.StateCompleted)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, domain.StateNotAssisted)
}

func (h *AppointmentHandler) transition(c *gin.Context, target domain.State) {
	userID, role := actor(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.transitionUC.Execute(c.Request.Context(), id, ucAppointment.TransitionInput{
		ActorID:   userID,
		ActorRole: role,
		Target:    target,
	})
	if err != nil {
		httperr.From(c, err, "failed_to_transition_appointment", "Could not change the appointment state.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID, role := actor(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, userID, role); err != nil {
		httperr.From(c, err, "failed_to_delete_appointment", "Could not delete the appointment.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment deleted successfully"})
}
