package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/internal/apperrors"
	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/pkg/timeutil"
)

const dateLayout = "2006-01-02"

type AppointmentServiceImpl struct {
	repo       repository.AppointmentRepository
	doctorRepo repository.DoctorRepository
	logger     *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		logger:     logger,
	}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, patientID uuid.UUID, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		s.logger.Error("failed to resolve doctor", zap.String("doctorID", dto.DoctorID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to create appointment", err)
	}

	if patientID == uuid.Nil {
		return nil, apperrors.Invalid("Patient not authenticated")
	}

	date, err := time.Parse(dateLayout, dto.AppointmentDate)
	if err != nil {
		return nil, apperrors.Invalid("Invalid date")
	}

	if date.Before(time.Now()) {
		return nil, apperrors.Invalid("Appointment date cannot be in the past")
	}

	dayOfWeek := int(date.Weekday())
	if !doctor.IsAvailableAt(dayOfWeek, dto.StartTime) {
		return nil, apperrors.Invalid("Doctor is not available at this time")
	}

	endTime, err := timeutil.AddMinutes(dto.StartTime, domain.SlotDurationMinutes)
	if err != nil {
		return nil, apperrors.Invalid("Invalid start time")
	}

	conflict, err := s.repo.HasConflict(ctx, dto.DoctorID, date, dto.StartTime, endTime, nil)
	if err != nil {
		s.logger.Error("failed to check for conflicts", zap.Error(err))
		return nil, apperrors.Internal("Failed to create appointment", err)
	}
	if conflict {
		return nil, apperrors.Conflict("This time slot is already booked")
	}

	appointment := domain.Appointment{
		PatientID:       patientID,
		DoctorID:        dto.DoctorID,
		SpecialtyID:     doctor.SpecialtyID,
		AppointmentDate: date,
		StartTime:       dto.StartTime,
		EndTime:         endTime,
		Status:          domain.AppointmentStatusPending,
		Reason:          dto.Reason,
		Notes:           dto.Notes,
	}

	created, err := s.repo.Create(ctx, appointment)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict("This time slot is already booked")
		}
		s.logger.Error("failed to create appointment", zap.Error(err))
		return nil, apperrors.Internal("Failed to create appointment", err)
	}

	return created, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Appointment not found")
		}
		s.logger.Error("failed to get appointment", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to get appointment", err)
	}
	return appointment, nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list appointments", zap.Error(err))
		return nil, apperrors.Internal("Failed to list appointments", err)
	}
	return appointments, nil
}

// GetAvailableSlots walks the doctor's active schedule entries for the date
// in 30-minute steps and marks each slot against the day's booked ranges.
// A window shorter than a full slot at the end of an entry is dropped.
func (s *AppointmentServiceImpl) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]domain.AvailableSlot, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		s.logger.Error("failed to resolve doctor", zap.String("doctorID", doctorID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to get available slots", err)
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, apperrors.Invalid("Invalid date")
	}

	schedules := doctor.SchedulesFor(int(date.Weekday()))
	if len(schedules) == 0 {
		return []domain.AvailableSlot{}, nil
	}

	// All statuses count as booked here; HasConflict narrows to active ones.
	appointments, err := s.repo.List(ctx, domain.AppointmentFilter{
		DoctorID:  &doctorID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		s.logger.Error("failed to list appointments for date", zap.Error(err))
		return nil, apperrors.Internal("Failed to get available slots", err)
	}

	type bookedRange struct {
		start int
		end   int
	}

	booked := make([]bookedRange, 0, len(appointments))
	for _, appointment := range appointments {
		start, _ := timeutil.ToMinutes(appointment.StartTime)
		end, _ := timeutil.ToMinutes(appointment.EndTime)
		booked = append(booked, bookedRange{start: start, end: end})
	}

	slots := make([]domain.AvailableSlot, 0)
	for _, entry := range schedules {
		start, _ := timeutil.ToMinutes(entry.StartTime)
		end, _ := timeutil.ToMinutes(entry.EndTime)

		for current := start; current+domain.SlotDurationMinutes <= end; current += domain.SlotDurationMinutes {
			slotEnd := current + domain.SlotDurationMinutes

			taken := false
			for _, b := range booked {
				if timeutil.Overlaps(current, slotEnd, b.start, b.end) {
					taken = true
					break
				}
			}

			slots = append(slots, domain.AvailableSlot{
				Date:        date.Format(dateLayout),
				StartTime:   timeutil.FromMinutes(current),
				EndTime:     timeutil.FromMinutes(slotEnd),
				IsAvailable: !taken,
			})
		}
	}

	return slots, nil
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Appointment not found")
		}
		s.logger.Error("failed to get appointment for update", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update appointment", err)
	}

	timeChanged := dto.AppointmentDate != nil || dto.StartTime != nil || dto.EndTime != nil

	if timeChanged && !appointment.CanBeModified() {
		return nil, apperrors.Conflict("This appointment cannot be modified")
	}

	if timeChanged {
		newDate := appointment.AppointmentDate
		if dto.AppointmentDate != nil {
			newDate, err = time.Parse(dateLayout, *dto.AppointmentDate)
			if err != nil {
				return nil, apperrors.Invalid("Invalid date")
			}
		}

		newStartTime := appointment.StartTime
		if dto.StartTime != nil {
			newStartTime = *dto.StartTime
		}
		newEndTime := appointment.EndTime
		if dto.EndTime != nil {
			newEndTime = *dto.EndTime
		}

		// Availability is re-checked best-effort: a failed doctor lookup is
		// not fatal for an update.
		doctor, err := s.doctorRepo.GetByID(ctx, appointment.DoctorID)
		if err != nil {
			s.logger.Warn("skipping availability check, doctor lookup failed",
				zap.String("doctorID", appointment.DoctorID.String()),
				zap.Error(err))
		} else if !doctor.IsAvailableAt(int(newDate.Weekday()), newStartTime) {
			return nil, apperrors.Invalid("Doctor is not available at this time")
		}

		conflict, err := s.repo.HasConflict(ctx, appointment.DoctorID, newDate, newStartTime, newEndTime, &id)
		if err != nil {
			s.logger.Error("failed to check for conflicts", zap.Error(err))
			return nil, apperrors.Internal("Failed to update appointment", err)
		}
		if conflict {
			return nil, apperrors.Conflict("This time slot is already booked")
		}
	}

	updated, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict("This time slot is already booked")
		}
		s.logger.Error("failed to update appointment", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update appointment", err)
	}

	return updated, nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Appointment not found")
		}
		s.logger.Error("failed to get appointment for cancel", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to cancel appointment", err)
	}

	if !appointment.CanBeCancelled() {
		return nil, apperrors.Conflict("This appointment cannot be cancelled")
	}

	status := domain.AppointmentStatusCancelled
	updated, err := s.repo.Update(ctx, id, domain.UpdateAppointmentDTO{Status: &status})
	if err != nil {
		s.logger.Error("failed to cancel appointment", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to cancel appointment", err)
	}

	return updated, nil
}

// Delete removes the appointment unconditionally, whatever its status.
func (s *AppointmentServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Appointment not found or could not be deleted")
		}
		s.logger.Error("failed to delete appointment", zap.String("id", id.String()), zap.Error(err))
		return apperrors.Internal("Failed to delete appointment", err)
	}
	return nil
}
