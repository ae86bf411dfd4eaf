package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	Auth         AuthService
	Doctor       DoctorService
	Patient      PatientService
	Specialty    SpecialtyService
	Appointment  AppointmentService
	WorkSchedule WorkScheduleService
}

func NewServices(deps Deps) *Services {
	return &Services{
		Auth:         NewAuthService(deps.Repos.Doctor, deps.Repos.Patient, deps.Repos.Specialty, deps.Config.JWT, deps.Logger),
		Doctor:       NewDoctorService(deps.Repos.Doctor, deps.Repos.Specialty, deps.FileStorage, deps.Logger),
		Patient:      NewPatientService(deps.Repos.Patient, deps.Logger),
		Specialty:    NewSpecialtyService(deps.Repos.Specialty, deps.Logger),
		Appointment:  NewAppointmentService(deps.Repos.Appointment, deps.Repos.Doctor, deps.Logger),
		WorkSchedule: NewWorkScheduleService(deps.Repos.WorkSchedule, deps.Repos.Doctor, deps.Logger),
	}
}

// AppointmentService owns the booking lifecycle: it enforces doctor
// availability, runs conflict detection before every write and derives the
// bookable slot grid for a date.
type AppointmentService interface {
	Create(ctx context.Context, patientID uuid.UUID, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]domain.AvailableSlot, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DoctorService interface {
	Create(ctx context.Context, dto domain.CreateDoctorDTO) (*domain.Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	ListBySpecialty(ctx context.Context, specialtyID uuid.UUID) ([]domain.Doctor, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdateDoctorDTO) (*domain.Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadPhoto(ctx context.Context, id uuid.UUID, photo []byte, filename string) (string, error)
	GetPhotoURL(ctx context.Context, id uuid.UUID) (string, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

type PatientService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdatePatientDTO) (*domain.Patient, error)
}

type SpecialtyService interface {
	Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (*domain.Specialty, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Specialty, error)
	List(ctx context.Context) ([]domain.Specialty, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdateSpecialtyDTO) (*domain.Specialty, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type WorkScheduleService interface {
	GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]domain.WorkScheduleEntry, error)
	Replace(ctx context.Context, doctorID uuid.UUID, entries []domain.WorkScheduleEntryDTO) ([]domain.WorkScheduleEntry, error)
}

type AuthService interface {
	RegisterDoctor(ctx context.Context, dto domain.RegisterDoctorDTO) (*domain.AuthResponse, error)
	RegisterPatient(ctx context.Context, dto domain.RegisterPatientDTO) (*domain.AuthResponse, error)
	Login(ctx context.Context, dto domain.LoginDTO) (*domain.AuthResponse, error)
	ParseToken(ctx context.Context, token string) (*domain.AuthClaim, error)
}
