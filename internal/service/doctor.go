package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"clinic/internal/apperrors"
	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/internal/storage"
)

const photoURLExpiry = 15 * time.Minute

type DoctorServiceImpl struct {
	repo          repository.DoctorRepository
	specialtyRepo repository.SpecialtyRepository
	fileStorage   storage.FileStorage
	logger        *zap.Logger
}

func NewDoctorService(
	repo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:          repo,
		specialtyRepo: specialtyRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, dto domain.CreateDoctorDTO) (*domain.Doctor, error) {
	if _, err := s.specialtyRepo.GetByID(ctx, dto.SpecialtyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Specialty not found")
		}
		s.logger.Error("failed to resolve specialty", zap.Error(err))
		return nil, apperrors.Internal("Failed to create doctor", err)
	}

	if _, err := s.repo.GetByEmail(ctx, dto.Email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.Internal("Failed to create doctor", err)
	}

	doctor, err := s.repo.Create(ctx, dto, string(passwordHash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.logger.Error("failed to create doctor", zap.Error(err))
		return nil, apperrors.Internal("Failed to create doctor", err)
	}

	return doctor, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		s.logger.Error("failed to get doctor", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to get doctor", err)
	}
	return doctor, nil
}

func (s *DoctorServiceImpl) List(ctx context.Context) ([]domain.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list doctors", zap.Error(err))
		return nil, apperrors.Internal("Failed to list doctors", err)
	}
	return doctors, nil
}

func (s *DoctorServiceImpl) ListBySpecialty(ctx context.Context, specialtyID uuid.UUID) ([]domain.Doctor, error) {
	doctors, err := s.repo.ListBySpecialty(ctx, specialtyID)
	if err != nil {
		s.logger.Error("failed to list doctors by specialty", zap.Error(err))
		return nil, apperrors.Internal("Failed to list doctors", err)
	}
	return doctors, nil
}

func (s *DoctorServiceImpl) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateDoctorDTO) (*domain.Doctor, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		s.logger.Error("failed to get doctor for update", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update doctor", err)
	}

	if dto.SpecialtyID != nil {
		if _, err := s.specialtyRepo.GetByID(ctx, *dto.SpecialtyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NotFound("Specialty not found")
			}
			s.logger.Error("failed to resolve specialty", zap.Error(err))
			return nil, apperrors.Internal("Failed to update doctor", err)
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.logger.Error("failed to update doctor", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update doctor", err)
	}

	return s.GetByID(ctx, id)
}

func (s *DoctorServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Doctor not found or could not be deleted")
		}
		s.logger.Error("failed to delete doctor", zap.String("id", id.String()), zap.Error(err))
		return apperrors.Internal("Failed to delete doctor", err)
	}
	return nil
}

func (s *DoctorServiceImpl) UploadPhoto(ctx context.Context, id uuid.UUID, photo []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", apperrors.Internal("File storage is not configured", nil)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.NotFound("Doctor not found")
		}
		return "", apperrors.Internal("Failed to upload photo", err)
	}

	photoURL, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("failed to upload doctor photo", zap.String("id", id.String()), zap.Error(err))
		return "", apperrors.Internal("Failed to upload photo", err)
	}

	if err := s.repo.UpdatePhotoURL(ctx, id, photoURL); err != nil {
		s.logger.Error("failed to save doctor photo url", zap.String("id", id.String()), zap.Error(err))
		return "", apperrors.Internal("Failed to upload photo", err)
	}

	return photoURL, nil
}

// GetPhotoURL returns a short-lived presigned link to the doctor's photo so
// the bucket can stay private.
func (s *DoctorServiceImpl) GetPhotoURL(ctx context.Context, id uuid.UUID) (string, error) {
	if s.fileStorage == nil {
		return "", apperrors.Internal("File storage is not configured", nil)
	}

	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if doctor.PhotoURL == "" {
		return "", apperrors.NotFound("Photo not found")
	}

	url, err := s.fileStorage.GetPresignedURL(ctx, doctor.PhotoURL, photoURLExpiry)
	if err != nil {
		s.logger.Error("failed to presign doctor photo url", zap.String("id", id.String()), zap.Error(err))
		return "", apperrors.Internal("Failed to get photo", err)
	}

	return url, nil
}

func (s *DoctorServiceImpl) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	if s.fileStorage == nil {
		return apperrors.Internal("File storage is not configured", nil)
	}

	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if doctor.PhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, doctor.PhotoURL); err != nil {
		s.logger.Warn("failed to delete doctor photo from storage", zap.String("id", id.String()), zap.Error(err))
	}

	if err := s.repo.UpdatePhotoURL(ctx, id, ""); err != nil {
		s.logger.Error("failed to clear doctor photo url", zap.String("id", id.String()), zap.Error(err))
		return apperrors.Internal("Failed to delete photo", err)
	}

	return nil
}
