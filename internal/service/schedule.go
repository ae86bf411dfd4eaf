package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/internal/apperrors"
	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/pkg/timeutil"
)

type WorkScheduleServiceImpl struct {
	repo       repository.WorkScheduleRepository
	doctorRepo repository.DoctorRepository
	logger     *zap.Logger
}

func NewWorkScheduleService(
	repo repository.WorkScheduleRepository,
	doctorRepo repository.DoctorRepository,
	logger *zap.Logger,
) *WorkScheduleServiceImpl {
	return &WorkScheduleServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		logger:     logger,
	}
}

func (s *WorkScheduleServiceImpl) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]domain.WorkScheduleEntry, error) {
	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		s.logger.Error("failed to resolve doctor", zap.String("doctorID", doctorID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to get work schedule", err)
	}

	entries, err := s.repo.GetByDoctorID(ctx, doctorID)
	if err != nil {
		s.logger.Error("failed to get work schedule", zap.String("doctorID", doctorID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to get work schedule", err)
	}

	return entries, nil
}

// Replace swaps the doctor's whole weekly schedule. Active entries for the
// same day must not overlap each other.
func (s *WorkScheduleServiceImpl) Replace(ctx context.Context, doctorID uuid.UUID, entries []domain.WorkScheduleEntryDTO) ([]domain.WorkScheduleEntry, error) {
	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		s.logger.Error("failed to resolve doctor", zap.String("doctorID", doctorID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update work schedule", err)
	}

	if err := validateScheduleEntries(entries); err != nil {
		return nil, err
	}

	created, err := s.repo.ReplaceForDoctor(ctx, doctorID, entries)
	if err != nil {
		s.logger.Error("failed to replace work schedule", zap.String("doctorID", doctorID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update work schedule", err)
	}

	return created, nil
}

func validateScheduleEntries(entries []domain.WorkScheduleEntryDTO) error {
	type window struct {
		start int
		end   int
	}
	activeByDay := make(map[int][]window)

	for _, entry := range entries {
		if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
			return apperrors.Invalid("Day of week must be between 0 and 6")
		}

		start, err := timeutil.ToMinutes(entry.StartTime)
		if err != nil {
			return apperrors.Invalid("Invalid start time format, expected HH:mm")
		}

		end, err := timeutil.ToMinutes(entry.EndTime)
		if err != nil {
			return apperrors.Invalid("Invalid end time format, expected HH:mm")
		}

		if start >= end {
			return apperrors.Invalid("Start time must be before end time")
		}

		if !entry.IsActive {
			continue
		}

		for _, w := range activeByDay[entry.DayOfWeek] {
			if timeutil.Overlaps(start, end, w.start, w.end) {
				return apperrors.Invalid("Schedule entries for the same day cannot overlap")
			}
		}
		activeByDay[entry.DayOfWeek] = append(activeByDay[entry.DayOfWeek], window{start: start, end: end})
	}

	return nil
}
