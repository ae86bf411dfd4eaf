package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("not found")
	// ErrSlotTaken is returned when an insert or update would double-book a
	// doctor's slot, whether detected by the pre-insert check or by the
	// storage-level uniqueness constraint.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrDuplicate is returned on unique-column violations (e.g. email).
	ErrDuplicate = errors.New("already exists")
)

type Repositories struct {
	Doctor       DoctorRepository
	Patient      PatientRepository
	Specialty    SpecialtyRepository
	Appointment  AppointmentRepository
	WorkSchedule WorkScheduleRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Doctor:       NewDoctorRepository(db),
		Patient:      NewPatientRepository(db),
		Specialty:    NewSpecialtyRepository(db),
		Appointment:  NewAppointmentRepository(db),
		WorkSchedule: NewWorkScheduleRepository(db),
	}
}

// DoctorRepository returns doctor snapshots with their work-schedule list
// and specialty reference loaded.
type DoctorRepository interface {
	Create(ctx context.Context, dto domain.CreateDoctorDTO, passwordHash string) (*domain.Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	ListBySpecialty(ctx context.Context, specialtyID uuid.UUID) ([]domain.Doctor, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdateDoctorDTO) error
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PatientRepository interface {
	Create(ctx context.Context, dto domain.RegisterPatientDTO, passwordHash string) (*domain.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdatePatientDTO) error
}

type SpecialtyRepository interface {
	Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (*domain.Specialty, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Specialty, error)
	List(ctx context.Context) ([]domain.Specialty, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdateSpecialtyDTO) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasConflict(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error)
}

type WorkScheduleRepository interface {
	GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]domain.WorkScheduleEntry, error)
	ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, entries []domain.WorkScheduleEntryDTO) ([]domain.WorkScheduleEntry, error)
}
