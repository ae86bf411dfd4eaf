package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/domain"
	"clinic/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register/doctor", h.registerDoctor)
			auth.POST("/register/patient", h.registerPatient)
			auth.POST("/login", h.login)
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("", h.getDoctors)
			doctors.GET("/:id", h.getDoctorByID)
			doctors.GET("/specialty/:specialtyId", h.getDoctorsBySpecialty)
			doctors.GET("/:id/schedule", h.getDoctorSchedule)
			doctors.GET("/:id/photo", h.getDoctorPhoto)

			auth := doctors.Group("", h.authMiddleware())
			{
				auth.POST("", h.roleMiddleware(domain.UserRoleAdmin), h.createDoctor)
				auth.PUT("/:id", h.roleMiddleware(domain.UserRoleDoctor, domain.UserRoleAdmin), h.updateDoctor)
				auth.DELETE("/:id", h.roleMiddleware(domain.UserRoleAdmin), h.deleteDoctor)

				auth.PUT("/:id/schedule", h.roleMiddleware(domain.UserRoleDoctor, domain.UserRoleAdmin), h.replaceDoctorSchedule)

				auth.POST("/:id/photo", h.roleMiddleware(domain.UserRoleDoctor, domain.UserRoleAdmin), h.uploadDoctorPhoto)
				auth.DELETE("/:id/photo", h.roleMiddleware(domain.UserRoleDoctor, domain.UserRoleAdmin), h.deleteDoctorPhoto)
			}
		}

		specialties := api.Group("/specialties")
		{
			specialties.GET("", h.getSpecialties)
			specialties.GET("/:id", h.getSpecialtyByID)

			admin := specialties.Group("", h.authMiddleware(), h.roleMiddleware(domain.UserRoleAdmin))
			{
				admin.POST("", h.createSpecialty)
				admin.PUT("/:id", h.updateSpecialty)
				admin.DELETE("/:id", h.deleteSpecialty)
			}
		}

		patients := api.Group("/patients")
		patients.Use(h.authMiddleware())
		{
			patients.GET("/me", h.getCurrentPatient)
			patients.PUT("/me", h.updateCurrentPatient)
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.POST("", h.createAppointment)
			appointments.GET("", h.getAppointments)
			appointments.GET("/my-appointments", h.getMyAppointments)
			appointments.GET("/available-slots/:doctorId", h.getAvailableSlots)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id", h.updateAppointment)
			appointments.PATCH("/:id/cancel", h.cancelAppointment)
			appointments.DELETE("/:id", h.deleteAppointment)
		}
	}
}
