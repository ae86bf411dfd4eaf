package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type PatientRepo struct {
	db *pgxpool.Pool
}

func NewPatientRepository(db *pgxpool.Pool) *PatientRepo {
	return &PatientRepo{
		db: db,
	}
}

const patientColumns = `id, name, email, password_hash, phone, date_of_birth, address, emergency_contact, created_at, updated_at`

func scanPatient(row pgx.Row) (*domain.Patient, error) {
	var patient domain.Patient
	var phone, address, emergencyContact *string

	err := row.Scan(
		&patient.ID,
		&patient.Name,
		&patient.Email,
		&patient.PasswordHash,
		&phone,
		&patient.DateOfBirth,
		&address,
		&emergencyContact,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone != nil {
		patient.Phone = *phone
	}
	if address != nil {
		patient.Address = *address
	}
	if emergencyContact != nil {
		patient.EmergencyContact = *emergencyContact
	}

	return &patient, nil
}

func (r *PatientRepo) Create(ctx context.Context, dto domain.RegisterPatientDTO, passwordHash string) (*domain.Patient, error) {
	var dateOfBirth *time.Time
	if dto.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", dto.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date of birth: %w", err)
		}
		dateOfBirth = &parsed
	}

	query := `
		INSERT INTO patients (id, name, email, password_hash, phone, date_of_birth, address, emergency_contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + patientColumns

	now := time.Now()
	patient, err := scanPatient(r.db.QueryRow(ctx, query,
		uuid.New(),
		dto.Name,
		dto.Email,
		passwordHash,
		nullableString(dto.Phone),
		dateOfBirth,
		nullableString(dto.Address),
		nullableString(dto.EmergencyContact),
		now,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	return patient, nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	patient, err := scanPatient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return patient, nil
}

func (r *PatientRepo) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE email = $1`

	patient, err := scanPatient(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient by email: %w", err)
	}

	return patient, nil
}

func (r *PatientRepo) Update(ctx context.Context, id uuid.UUID, dto domain.UpdatePatientDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}

	if dto.Phone != nil {
		updateFields = append(updateFields, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, *dto.Phone)
		argCount++
	}

	if dto.DateOfBirth != nil {
		dateOfBirth, err := time.Parse("2006-01-02", *dto.DateOfBirth)
		if err != nil {
			return fmt.Errorf("failed to parse date of birth: %w", err)
		}
		updateFields = append(updateFields, fmt.Sprintf("date_of_birth = $%d", argCount))
		args = append(args, dateOfBirth)
		argCount++
	}

	if dto.Address != nil {
		updateFields = append(updateFields, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *dto.Address)
		argCount++
	}

	if dto.EmergencyContact != nil {
		updateFields = append(updateFields, fmt.Sprintf("emergency_contact = $%d", argCount))
		args = append(args, *dto.EmergencyContact)
		argCount++
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE patients SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
