package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"surgery-reservation-system/internal/delivery/dto"
	"surgery-reservation-system/internal/usecase"
	"surgery-reservation-system/pkg/response"
	"surgery-reservation-system/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// writeError maps usecase errors to HTTP responses. Every appointment
// endpoint funnels through here so the status codes stay consistent.
func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrStaffNotFound:
		response.NotFound(w, "Team member not found")
	case usecase.ErrRoomNotFound:
		response.NotFound(w, "Operating room not found")
	case usecase.ErrBedNotFound:
		response.NotFound(w, "Operating bed not found")
	case usecase.ErrUserNotFound:
		response.Unauthorized(w, "Invalid token")
	case usecase.ErrDoctorRequired:
		response.BadRequest(w, "doctor_id is required")
	case usecase.ErrBedNotInRoom:
		response.BadRequest(w, "Bed does not belong to the selected room")
	case usecase.ErrInvalidTimeRange:
		response.BadRequest(w, "Planned end time must be after start time")
	case usecase.ErrPastSurgeryDate:
		response.BadRequest(w, "Surgery date cannot be in the past")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, expected YYYY-MM-DD")
	case usecase.ErrDoctorConflict:
		response.Conflict(w, "Doctor already has a surgery in this time slot")
	case usecase.ErrRoomConflict:
		response.Conflict(w, "Operating room is occupied in this time slot")
	case usecase.ErrBedConflict:
		response.Conflict(w, "Operating bed is occupied in this time slot")
	case usecase.ErrIllegalTransition:
		response.Conflict(w, "Appointment status does not allow this operation")
	case usecase.ErrCannotCancel:
		response.Conflict(w, "Appointment can no longer be cancelled")
	case usecase.ErrNotCancelled:
		response.Conflict(w, "Only cancelled appointments can be deleted")
	case usecase.ErrNotTeamMember:
		response.Forbidden(w, "You are not assigned to this surgery")
	case usecase.ErrNotAttendingDoctor:
		response.Forbidden(w, "You are not the attending doctor")
	case usecase.ErrNotOwner:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrCancellationWindow:
		response.PolicyViolation(w, "Cancellation is closed within 48 hours of surgery")
	case usecase.ErrCancellationLimit:
		response.PolicyViolation(w, "Monthly cancellation limit reached")
	case usecase.ErrUserBlacklisted:
		response.PolicyViolation(w, "Account is blacklisted from cancelling appointments")
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *AppointmentHandler) appointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateAppointment handles surgery appointment creation
// @Summary Create a surgery appointment
// @Description Schedule a surgery for a patient with room, bed and team allocation
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// GetAppointment returns a single appointment with full detail
// @Summary Get appointment by ID
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// UpdateAppointment handles partial updates of an appointment
// @Summary Update an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// DeleteAppointment removes a cancelled appointment
// @Summary Delete a cancelled appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

// ConfirmByTeamMember records a team member confirmation
// @Summary Confirm participation as anesthesiologist or nurse
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /appointments/{id}/confirm [post]
func (h *AppointmentHandler) ConfirmByTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.ConfirmByTeamMember(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to confirm appointment")
		return
	}

	response.Success(w, http.StatusOK, "Confirmation recorded", appointment)
}

// DoctorFinalConfirm records the attending doctor's final confirmation
// @Summary Final confirmation by the attending doctor
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/final-confirm [post]
func (h *AppointmentHandler) DoctorFinalConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.DoctorFinalConfirm(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to record final confirmation")
		return
	}

	response.Success(w, http.StatusOK, "Final confirmation recorded", appointment)
}

// NotifyPatient sends the surgery notice to the patient
// @Summary Notify the patient of the confirmed surgery
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/notify [post]
func (h *AppointmentHandler) NotifyPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.NotifyPatient(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to notify patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient notified", appointment)
}

// StartSurgery marks the surgery as in progress
// @Summary Start a surgery
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/start [post]
func (h *AppointmentHandler) StartSurgery(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.StartSurgery(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to start surgery")
		return
	}

	response.Success(w, http.StatusOK, "Surgery started", appointment)
}

// CompleteSurgery marks the surgery as completed
// @Summary Complete a surgery
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CompleteSurgeryRequest false "Complete Surgery Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) CompleteSurgery(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.CompleteSurgeryRequest
	json.NewDecoder(r.Body).Decode(&req)

	appointment, err := h.appointmentUsecase.CompleteSurgery(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to complete surgery")
		return
	}

	response.Success(w, http.StatusOK, "Surgery completed", appointment)
}

// CancelAppointment handles patient self-service cancellation
// @Summary Cancel own appointment
// @Description Cancel subject to the 48 hour window and monthly limit
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CancelAppointmentRequest true "Cancel Appointment Request"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), id, &req); err != nil {
		h.writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// ForceCancelAppointment handles administrative cancellation
// @Summary Force cancel an appointment
// @Description Cancel regardless of policy, blacklisting the patient on short notice
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.ForceCancelAppointmentRequest true "Force Cancel Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/force-cancel [post]
func (h *AppointmentHandler) ForceCancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.ForceCancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.ForceCancelAppointment(r.Context(), id, &req); err != nil {
		h.writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// PostponeAppointment parks an appointment for later rescheduling
// @Summary Postpone an appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/postpone [post]
func (h *AppointmentHandler) PostponeAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.PostponeAppointment(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to postpone appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment postponed", appointment)
}

// RescheduleAppointment gives a postponed appointment a new slot
// @Summary Reschedule a postponed appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RescheduleAppointmentRequest true "Reschedule Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.RescheduleAppointment(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled", appointment)
}

// GetByDate lists appointments for a single day
// @Summary List appointments by date
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /appointments/daily [get]
func (h *AppointmentHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	list, err := h.appointmentUsecase.GetByDate(r.Context(), date)
	if err != nil {
		h.writeError(w, err, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}

// GetWeek lists appointments for a seven day window
// @Summary List appointments for a week
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param start query string true "Week start date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /appointments/weekly [get]
func (h *AppointmentHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	if start == "" {
		response.BadRequest(w, "start query parameter is required")
		return
	}

	list, err := h.appointmentUsecase.GetWeek(r.Context(), start)
	if err != nil {
		h.writeError(w, err, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}

// GetMyAppointments lists the caller's appointments by role
// @Summary List my appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/my [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		h.writeError(w, err, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}

// GetRoomSchedule lists a room's appointments for a date
// @Summary Operating room schedule
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /appointments/rooms/{id}/schedule [get]
func (h *AppointmentHandler) GetRoomSchedule(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	list, err := h.appointmentUsecase.GetRoomSchedule(r.Context(), roomID, date)
	if err != nil {
		h.writeError(w, err, "Failed to get room schedule")
		return
	}

	response.Success(w, http.StatusOK, "Room schedule retrieved successfully", list)
}

// GetBedSchedule lists a bed's appointments for a date
// @Summary Operating bed schedule
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Bed ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /appointments/beds/{id}/schedule [get]
func (h *AppointmentHandler) GetBedSchedule(w http.ResponseWriter, r *http.Request) {
	bedID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid bed ID")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	list, err := h.appointmentUsecase.GetBedSchedule(r.Context(), bedID, date)
	if err != nil {
		h.writeError(w, err, "Failed to get bed schedule")
		return
	}

	response.Success(w, http.StatusOK, "Bed schedule retrieved successfully", list)
}

// GetPendingConfirmations lists appointments awaiting the caller's confirmation
// @Summary List appointments pending my confirmation
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Response
// @Router /appointments/pending-confirmations [get]
func (h *AppointmentHandler) GetPendingConfirmations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	list, err := h.appointmentUsecase.GetPendingConfirmations(r.Context(), date)
	if err != nil {
		h.writeError(w, err, "Failed to list pending confirmations")
		return
	}

	response.Success(w, http.StatusOK, "Pending confirmations retrieved successfully", list)
}

// SearchByStatuses lists appointments filtered by status with pagination
// @Summary Search appointments by status
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param status query string false "Comma separated statuses"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) SearchByStatuses(w http.ResponseWriter, r *http.Request) {
	var statuses []string
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.appointmentUsecase.SearchByStatuses(r.Context(), statuses, page, limit)
	if err != nil {
		h.writeError(w, err, "Failed to search appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}
