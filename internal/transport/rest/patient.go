package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Get my profile
// @Tags Patients
// @Produce json
// @Success 200 {object} domain.Patient
// @Failure 404 {object} errorResponseBody "Patient not found"
// @Security ApiKeyAuth
// @Router /patients/me [get]
func (h *Handler) getCurrentPatient(c *gin.Context) {
	patientID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	patient, err := h.services.Patient.GetByID(c.Request.Context(), patientID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, patient)
}

// @Summary Update my profile
// @Tags Patients
// @Accept json
// @Produce json
// @Param input body domain.UpdatePatientDTO true "Fields to update"
// @Success 200 {object} domain.Patient
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Patient not found"
// @Security ApiKeyAuth
// @Router /patients/me [put]
func (h *Handler) updateCurrentPatient(c *gin.Context) {
	patientID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.UpdatePatientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	patient, err := h.services.Patient.Update(c.Request.Context(), patientID, req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, patient)
}
