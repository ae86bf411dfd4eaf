package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Book an appointment
// @Description Books a 30-minute appointment slot with a doctor
// @Tags Appointments
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Appointment data"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Validation error or doctor not available"
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Failure 409 {object} errorResponseBody "Slot already booked"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	patientID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	appointment, err := h.services.Appointment.Create(c.Request.Context(), patientID, req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, appointment)
}

// @Summary Get an appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Invalid ID"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid appointment ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary List appointments
// @Description Lists appointments filtered by doctor, patient, specialty, status or date range
// @Tags Appointments
// @Produce json
// @Param doctor_id query string false "Doctor ID"
// @Param patient_id query string false "Patient ID"
// @Param specialty_id query string false "Specialty ID"
// @Param status query string false "Appointment status"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.Appointment
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	filter, err := appointmentFilterFromQuery(c)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	appointments, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointments)
}

// @Summary List my appointments
// @Description Lists the authenticated patient's appointments
// @Tags Appointments
// @Produce json
// @Param status query string false "Appointment status"
// @Success 200 {array} domain.Appointment
// @Security ApiKeyAuth
// @Router /appointments/my-appointments [get]
func (h *Handler) getMyAppointments(c *gin.Context) {
	patientID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter, err := appointmentFilterFromQuery(c)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}
	filter.PatientID = &patientID

	appointments, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointments)
}

// @Summary Get available slots
// @Description Returns the doctor's 30-minute slot grid for a date with availability flags
// @Tags Appointments
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} domain.AvailableSlot
// @Failure 400 {object} errorResponseBody "Invalid date"
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Security ApiKeyAuth
// @Router /appointments/available-slots/{doctorId} [get]
func (h *Handler) getAvailableSlots(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "date query parameter is required")
		return
	}

	slots, err := h.services.Appointment.GetAvailableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Update an appointment
// @Description Reschedules or edits an appointment. Time changes are conflict-checked.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param input body domain.UpdateAppointmentDTO true "Fields to update"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Failure 409 {object} errorResponseBody "Slot already booked or appointment not modifiable"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid appointment ID")
		return
	}

	var req domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	appointment, err := h.services.Appointment.Update(c.Request.Context(), id, req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Cancel an appointment
// @Description Marks an active appointment as cancelled, freeing its slot
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Failure 409 {object} errorResponseBody "Appointment cannot be cancelled"
// @Security ApiKeyAuth
// @Router /appointments/{id}/cancel [patch]
func (h *Handler) cancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid appointment ID")
		return
	}

	appointment, err := h.services.Appointment.Cancel(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Delete an appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 204 "Deleted"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *Handler) deleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid appointment ID")
		return
	}

	if err := h.services.Appointment.Delete(c.Request.Context(), id); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

func appointmentFilterFromQuery(c *gin.Context) (domain.AppointmentFilter, error) {
	var filter domain.AppointmentFilter

	if v := c.Query("doctor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errInvalidQueryParam("doctor_id")
		}
		filter.DoctorID = &id
	}

	if v := c.Query("patient_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errInvalidQueryParam("patient_id")
		}
		filter.PatientID = &id
	}

	if v := c.Query("specialty_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errInvalidQueryParam("specialty_id")
		}
		filter.SpecialtyID = &id
	}

	if v := c.Query("status"); v != "" {
		status := domain.AppointmentStatus(v)
		filter.Status = &status
	}

	if v := c.Query("date_from"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidQueryParam("date_from")
		}
		filter.StartDate = &date
	}

	if v := c.Query("date_to"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidQueryParam("date_to")
		}
		filter.EndDate = &date
	}

	return filter, nil
}

type queryParamError struct {
	param string
}

func (e queryParamError) Error() string {
	return "invalid query parameter: " + e.param
}

func errInvalidQueryParam(param string) error {
	return queryParamError{param: param}
}
