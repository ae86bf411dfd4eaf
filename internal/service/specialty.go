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

type SpecialtyServiceImpl struct {
	repo   repository.SpecialtyRepository
	logger *zap.Logger
}

func NewSpecialtyService(repo repository.SpecialtyRepository, logger *zap.Logger) *SpecialtyServiceImpl {
	return &SpecialtyServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *SpecialtyServiceImpl) Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (*domain.Specialty, error) {
	exists, err := s.repo.ExistsByName(ctx, dto.Name)
	if err != nil {
		s.logger.Error("failed to check specialty name", zap.Error(err))
		return nil, apperrors.Internal("Failed to create specialty", err)
	}
	if exists {
		return nil, apperrors.Conflict("A specialty with this name already exists")
	}

	specialty, err := s.repo.Create(ctx, dto)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("A specialty with this name already exists")
		}
		s.logger.Error("failed to create specialty", zap.Error(err))
		return nil, apperrors.Internal("Failed to create specialty", err)
	}

	return specialty, nil
}

func (s *SpecialtyServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Specialty, error) {
	specialty, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Specialty not found")
		}
		s.logger.Error("failed to get specialty", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to get specialty", err)
	}
	return specialty, nil
}

func (s *SpecialtyServiceImpl) List(ctx context.Context) ([]domain.Specialty, error) {
	specialties, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list specialties", zap.Error(err))
		return nil, apperrors.Internal("Failed to list specialties", err)
	}
	return specialties, nil
}

func (s *SpecialtyServiceImpl) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateSpecialtyDTO) (*domain.Specialty, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if dto.Name != nil {
		exists, err := s.repo.ExistsByName(ctx, *dto.Name)
		if err != nil {
			s.logger.Error("failed to check specialty name", zap.Error(err))
			return nil, apperrors.Internal("Failed to update specialty", err)
		}
		if exists {
			return nil, apperrors.Conflict("A specialty with this name already exists")
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal("Failed to update specialty", err)
		}
		s.logger.Error("failed to update specialty", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update specialty", err)
	}

	return s.GetByID(ctx, id)
}

func (s *SpecialtyServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Specialty not found or could not be deleted")
		}
		s.logger.Error("failed to delete specialty", zap.String("id", id.String()), zap.Error(err))
		return apperrors.Internal("Failed to delete specialty", err)
	}
	return nil
}
