package domain

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// SlotDurationMinutes is the fixed booking granularity of the clinic.
const SlotDurationMinutes = 30

type Appointment struct {
	ID              uuid.UUID         `json:"id"`
	PatientID       uuid.UUID         `json:"patient_id"`
	DoctorID        uuid.UUID         `json:"doctor_id"`
	SpecialtyID     uuid.UUID         `json:"specialty_id"`
	AppointmentDate time.Time         `json:"appointment_date"`
	StartTime       string            `json:"start_time"`
	EndTime         string            `json:"end_time"`
	Status          AppointmentStatus `json:"status"`
	Reason          string            `json:"reason"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

func (a *Appointment) CanBeModified() bool {
	return a.IsActive()
}

type CreateAppointmentDTO struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentDate string    `json:"appointment_date" binding:"required"`
	StartTime       string    `json:"start_time" binding:"required"`
	Reason          string    `json:"reason" binding:"required"`
	Notes           string    `json:"notes"`
}

type UpdateAppointmentDTO struct {
	AppointmentDate *string            `json:"appointment_date"`
	StartTime       *string            `json:"start_time"`
	EndTime         *string            `json:"end_time"`
	Status          *AppointmentStatus `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED NO_SHOW"`
	Reason          *string            `json:"reason"`
	Notes           *string            `json:"notes"`
}

type AppointmentFilter struct {
	PatientID   *uuid.UUID         `json:"patient_id"`
	DoctorID    *uuid.UUID         `json:"doctor_id"`
	SpecialtyID *uuid.UUID         `json:"specialty_id"`
	Status      *AppointmentStatus `json:"status"`
	StartDate   *time.Time         `json:"start_date"`
	EndDate     *time.Time         `json:"end_date"`
}

// AvailableSlot is derived on every query and never persisted.
type AvailableSlot struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}
