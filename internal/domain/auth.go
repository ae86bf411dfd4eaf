package domain

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleDoctor  UserRole = "doctor"
	UserRolePatient UserRole = "patient"
	UserRoleAdmin   UserRole = "admin"
)

type RegisterDoctorDTO struct {
	Name          string    `json:"name" binding:"required"`
	Email         string    `json:"email" binding:"required,email"`
	Password      string    `json:"password" binding:"required,min=6"`
	Phone         string    `json:"phone"`
	SpecialtyID   uuid.UUID `json:"specialty_id" binding:"required"`
	LicenseNumber string    `json:"license_number" binding:"required"`
}

type RegisterPatientDTO struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"date_of_birth"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthClaim is the decoded identity carried by a bearer token.
type AuthClaim struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
