package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Create a specialty
// @Tags Specialties
// @Accept json
// @Produce json
// @Param input body domain.CreateSpecialtyDTO true "Specialty data"
// @Success 201 {object} domain.Specialty
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 409 {object} errorResponseBody "Specialty name already taken"
// @Security ApiKeyAuth
// @Router /specialties [post]
func (h *Handler) createSpecialty(c *gin.Context) {
	var req domain.CreateSpecialtyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	specialty, err := h.services.Specialty.Create(c.Request.Context(), req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, specialty)
}

// @Summary Get a specialty
// @Tags Specialties
// @Produce json
// @Param id path string true "Specialty ID"
// @Success 200 {object} domain.Specialty
// @Failure 404 {object} errorResponseBody "Specialty not found"
// @Router /specialties/{id} [get]
func (h *Handler) getSpecialtyByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid specialty ID")
		return
	}

	specialty, err := h.services.Specialty.GetByID(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, specialty)
}

// @Summary List specialties
// @Tags Specialties
// @Produce json
// @Success 200 {array} domain.Specialty
// @Router /specialties [get]
func (h *Handler) getSpecialties(c *gin.Context) {
	specialties, err := h.services.Specialty.List(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, specialties)
}

// @Summary Update a specialty
// @Tags Specialties
// @Accept json
// @Produce json
// @Param id path string true "Specialty ID"
// @Param input body domain.UpdateSpecialtyDTO true "Fields to update"
// @Success 200 {object} domain.Specialty
// @Failure 404 {object} errorResponseBody "Specialty not found"
// @Failure 409 {object} errorResponseBody "Specialty name already taken"
// @Security ApiKeyAuth
// @Router /specialties/{id} [put]
func (h *Handler) updateSpecialty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid specialty ID")
		return
	}

	var req domain.UpdateSpecialtyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	specialty, err := h.services.Specialty.Update(c.Request.Context(), id, req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, specialty)
}

// @Summary Delete a specialty
// @Tags Specialties
// @Produce json
// @Param id path string true "Specialty ID"
// @Success 204 "Deleted"
// @Failure 404 {object} errorResponseBody "Specialty not found"
// @Security ApiKeyAuth
// @Router /specialties/{id} [delete]
func (h *Handler) deleteSpecialty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "invalid specialty ID")
		return
	}

	if err := h.services.Specialty.Delete(c.Request.Context(), id); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
