package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Register a doctor
// @Description Creates a doctor account and returns an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RegisterDoctorDTO true "Doctor registration data"
// @Success 201 {object} domain.AuthResponse
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Specialty not found"
// @Failure 409 {object} errorResponseBody "Email already registered"
// @Router /auth/register/doctor [post]
func (h *Handler) registerDoctor(c *gin.Context) {
	var req domain.RegisterDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	resp, err := h.services.Auth.RegisterDoctor(c.Request.Context(), req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, resp)
}

// @Summary Register a patient
// @Description Creates a patient account and returns an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RegisterPatientDTO true "Patient registration data"
// @Success 201 {object} domain.AuthResponse
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 409 {object} errorResponseBody "Email already registered"
// @Router /auth/register/patient [post]
func (h *Handler) registerPatient(c *gin.Context) {
	var req domain.RegisterPatientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	resp, err := h.services.Auth.RegisterPatient(c.Request.Context(), req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, resp)
}

// @Summary Log in
// @Description Authenticates a doctor or patient by email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.LoginDTO true "Credentials"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} errorResponseBody "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req domain.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	resp, err := h.services.Auth.Login(c.Request.Context(), req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, resp)
}
