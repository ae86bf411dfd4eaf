package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkScheduleEntry is one recurring weekly availability window for a doctor.
// DayOfWeek follows time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
type WorkScheduleEntry struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
}

type Doctor struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	PasswordHash  string              `json:"-"`
	Phone         string              `json:"phone,omitempty"`
	SpecialtyID   uuid.UUID           `json:"specialty_id"`
	Specialty     *Specialty          `json:"specialty,omitempty"`
	LicenseNumber string              `json:"license_number"`
	PhotoURL      string              `json:"photo_url,omitempty"`
	WorkSchedule  []WorkScheduleEntry `json:"work_schedule"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// IsAvailableAt reports whether an active schedule entry covers the given
// time on the given day. Start is inclusive, end exclusive. Zero-padded
// HH:mm strings compare lexicographically in time order.
func (d *Doctor) IsAvailableAt(dayOfWeek int, t string) bool {
	for _, entry := range d.WorkSchedule {
		if entry.IsActive &&
			entry.DayOfWeek == dayOfWeek &&
			t >= entry.StartTime &&
			t < entry.EndTime {
			return true
		}
	}
	return false
}

// SchedulesFor returns the active schedule entries for a day of week.
func (d *Doctor) SchedulesFor(dayOfWeek int) []WorkScheduleEntry {
	entries := make([]WorkScheduleEntry, 0)
	for _, entry := range d.WorkSchedule {
		if entry.IsActive && entry.DayOfWeek == dayOfWeek {
			entries = append(entries, entry)
		}
	}
	return entries
}

type CreateDoctorDTO struct {
	Name          string    `json:"name" binding:"required"`
	Email         string    `json:"email" binding:"required,email"`
	Password      string    `json:"password" binding:"required,min=6"`
	Phone         string    `json:"phone"`
	SpecialtyID   uuid.UUID `json:"specialty_id" binding:"required"`
	LicenseNumber string    `json:"license_number" binding:"required"`
}

type UpdateDoctorDTO struct {
	Name          *string    `json:"name"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	Phone         *string    `json:"phone"`
	SpecialtyID   *uuid.UUID `json:"specialty_id"`
	LicenseNumber *string    `json:"license_number"`
}

type WorkScheduleEntryDTO struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  bool   `json:"is_active"`
}
