package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic/internal/apperrors"
	"clinic/internal/domain"
	"clinic/internal/repository"
)

type PatientServiceImpl struct {
	repo   repository.PatientRepository
	logger *zap.Logger
}

func NewPatientService(repo repository.PatientRepository, logger *zap.Logger) *PatientServiceImpl {
	return &PatientServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *PatientServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Patient not found")
		}
		s.logger.Error("failed to get patient", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to get patient", err)
	}
	return patient, nil
}

func (s *PatientServiceImpl) Update(ctx context.Context, id uuid.UUID, dto domain.UpdatePatientDTO) (*domain.Patient, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("failed to update patient", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update patient", err)
	}

	return s.GetByID(ctx, id)
}
