package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

const maxPhotoSize = 5 << 20

// @Summary Create a doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Param input body domain.CreateDoctorDTO true "Doctor data"
// @Success 201 {object} domain.Doctor
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Specialty not found"
// @Failure 409 {object} errorResponseBody "Email already registered"
// @Security ApiKeyAuth
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
	var req domain.CreateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	doctor, err := h.services.Doctor.Create(c.Request.Context(), req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, doctor)
}

// @Summary Get a doctor
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} domain.Doctor
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Success 200 {array} domain.Doctor
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	doctors, err := h.services.Doctor.List(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctors)
}

// @Summary List doctors by specialty
// @Tags Doctors
// @Produce json
// @Param specialtyId path string true "Specialty ID"
// @Success 200 {array} domain.Doctor
// @Router /doctors/specialty/{specialtyId} [get]
func (h *Handler) getDoctorsBySpecialty(c *gin.Context) {
	specialtyID, err := uuid.Parse(c.Param("specialtyId"))
	if err != nil {
		badRequestResponse(c, "invalid specialty ID")
		return
	}

	doctors, err := h.services.Doctor.ListBySpecialty(c.Request.Context(), specialtyID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctors)
}

// @Summary Update a doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param input body domain.UpdateDoctorDTO true "Fields to update"
// @Success 200 {object} domain.Doctor
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Security ApiKeyAuth
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	var req domain.UpdateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	doctor, err := h.services.Doctor.Update(c.Request.Context(), id, req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Delete a doctor
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 204 "Deleted"
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Security ApiKeyAuth
// @Router /doctors/{id} [delete]
func (h *Handler) deleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	if err := h.services.Doctor.Delete(c.Request.Context(), id); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Get a doctor's weekly schedule
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {array} domain.WorkScheduleEntry
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Router /doctors/{id}/schedule [get]
func (h *Handler) getDoctorSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	entries, err := h.services.WorkSchedule.GetByDoctorID(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, entries)
}

// @Summary Replace a doctor's weekly schedule
// @Description Replaces all weekly schedule entries. Active entries for the same day must not overlap.
// @Tags Doctors
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param input body []domain.WorkScheduleEntryDTO true "Schedule entries"
// @Success 200 {array} domain.WorkScheduleEntry
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Security ApiKeyAuth
// @Router /doctors/{id}/schedule [put]
func (h *Handler) replaceDoctorSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	var req []domain.WorkScheduleEntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	entries, err := h.services.WorkSchedule.Replace(c.Request.Context(), id, req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, entries)
}

// @Summary Upload a doctor's photo
// @Tags Doctors
// @Accept mpfd
// @Produce json
// @Param id path string true "Doctor ID"
// @Param photo formData file true "Photo file"
// @Success 200 {object} map[string]string "Photo URL"
// @Failure 400 {object} errorResponseBody "Invalid file"
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [post]
func (h *Handler) uploadDoctorPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "photo file is required")
		return
	}

	if fileHeader.Size > maxPhotoSize {
		badRequestResponse(c, "photo file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to read photo file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to read photo file")
		return
	}

	url, err := h.services.Doctor.UploadPhoto(c.Request.Context(), id, data, fileHeader.Filename)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"photo_url": url})
}

// @Summary Get a doctor's photo URL
// @Description Returns a short-lived presigned URL for the doctor's photo
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} map[string]string "Photo URL"
// @Failure 404 {object} errorResponseBody "Doctor or photo not found"
// @Router /doctors/{id}/photo [get]
func (h *Handler) getDoctorPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	url, err := h.services.Doctor.GetPhotoURL(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"photo_url": url})
}

// @Summary Delete a doctor's photo
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Doctor not found"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [delete]
func (h *Handler) deleteDoctorPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor ID")
		return
	}

	if err := h.services.Doctor.DeletePhoto(c.Request.Context(), id); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "photo deleted")
}
