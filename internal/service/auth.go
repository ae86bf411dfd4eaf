package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"clinic/config"
	"clinic/internal/apperrors"
	"clinic/internal/domain"
	"clinic/internal/repository"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID       `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
}

type AuthServiceImpl struct {
	doctorRepo    repository.DoctorRepository
	patientRepo   repository.PatientRepository
	specialtyRepo repository.SpecialtyRepository
	jwtConfig     config.JWTConfig
	logger        *zap.Logger
}

func NewAuthService(
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	specialtyRepo repository.SpecialtyRepository,
	jwtConfig config.JWTConfig,
	logger *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		doctorRepo:    doctorRepo,
		patientRepo:   patientRepo,
		specialtyRepo: specialtyRepo,
		jwtConfig:     jwtConfig,
		logger:        logger,
	}
}

func (s *AuthServiceImpl) RegisterDoctor(ctx context.Context, dto domain.RegisterDoctorDTO) (*domain.AuthResponse, error) {
	if _, err := s.doctorRepo.GetByEmail(ctx, dto.Email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	}

	if _, err := s.specialtyRepo.GetByID(ctx, dto.SpecialtyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Specialty not found")
		}
		s.logger.Error("failed to resolve specialty", zap.Error(err))
		return nil, apperrors.Internal("Failed to register doctor", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.Internal("Failed to register doctor", err)
	}

	doctor, err := s.doctorRepo.Create(ctx, domain.CreateDoctorDTO{
		Name:          dto.Name,
		Email:         dto.Email,
		Phone:         dto.Phone,
		SpecialtyID:   dto.SpecialtyID,
		LicenseNumber: dto.LicenseNumber,
	}, string(passwordHash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.logger.Error("failed to create doctor", zap.Error(err))
		return nil, apperrors.Internal("Failed to register doctor", err)
	}

	token, err := s.generateToken(doctor.ID, doctor.Email, domain.UserRoleDoctor)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, apperrors.Internal("Failed to register doctor", err)
	}

	return &domain.AuthResponse{Token: token, User: doctor}, nil
}

func (s *AuthServiceImpl) RegisterPatient(ctx context.Context, dto domain.RegisterPatientDTO) (*domain.AuthResponse, error) {
	if _, err := s.patientRepo.GetByEmail(ctx, dto.Email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.Internal("Failed to register patient", err)
	}

	patient, err := s.patientRepo.Create(ctx, dto, string(passwordHash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.logger.Error("failed to create patient", zap.Error(err))
		return nil, apperrors.Internal("Failed to register patient", err)
	}

	token, err := s.generateToken(patient.ID, patient.Email, domain.UserRolePatient)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, apperrors.Internal("Failed to register patient", err)
	}

	return &domain.AuthResponse{Token: token, User: patient}, nil
}

// Login checks doctors first, then patients, like the clinic's single
// sign-in form expects.
func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginDTO) (*domain.AuthResponse, error) {
	var (
		userID       uuid.UUID
		passwordHash string
		role         domain.UserRole
		user         interface{}
	)

	doctor, err := s.doctorRepo.GetByEmail(ctx, dto.Email)
	if err == nil {
		userID = doctor.ID
		passwordHash = doctor.PasswordHash
		role = domain.UserRoleDoctor
		user = doctor
	} else {
		patient, err := s.patientRepo.GetByEmail(ctx, dto.Email)
		if err != nil {
			return nil, apperrors.Invalid("Invalid credentials")
		}
		userID = patient.ID
		passwordHash = patient.PasswordHash
		role = domain.UserRolePatient
		user = patient
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(dto.Password)); err != nil {
		return nil, apperrors.Invalid("Invalid credentials")
	}

	token, err := s.generateToken(userID, dto.Email, role)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, apperrors.Internal("Failed to login", err)
	}

	return &domain.AuthResponse{Token: token, User: user}, nil
}

func (s *AuthServiceImpl) ParseToken(_ context.Context, tokenString string) (*domain.AuthClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Invalid("Invalid or expired token")
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok {
		return nil, apperrors.Invalid("Invalid or expired token")
	}

	return &domain.AuthClaim{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s *AuthServiceImpl) generateToken(userID uuid.UUID, email string, role domain.UserRole) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SigningKey))
}
