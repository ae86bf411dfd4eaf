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

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{
		db: db,
	}
}

const doctorSelect = `
	SELECT d.id, d.name, d.email, d.password_hash, d.phone, d.specialty_id, d.license_number, d.photo_url, d.created_at, d.updated_at,
	       s.id, s.name, s.description, s.created_at, s.updated_at
	FROM doctors d
	JOIN specialties s ON d.specialty_id = s.id
`

func scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var doctor domain.Doctor
	var specialty domain.Specialty
	var phone, photoURL *string

	err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Email,
		&doctor.PasswordHash,
		&phone,
		&doctor.SpecialtyID,
		&doctor.LicenseNumber,
		&photoURL,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
		&specialty.ID,
		&specialty.Name,
		&specialty.Description,
		&specialty.CreatedAt,
		&specialty.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone != nil {
		doctor.Phone = *phone
	}
	if photoURL != nil {
		doctor.PhotoURL = *photoURL
	}
	doctor.Specialty = &specialty

	return &doctor, nil
}

func (r *DoctorRepo) Create(ctx context.Context, dto domain.CreateDoctorDTO, passwordHash string) (*domain.Doctor, error) {
	query := `
		INSERT INTO doctors (id, name, email, password_hash, phone, specialty_id, license_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	now := time.Now()
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		uuid.New(),
		dto.Name,
		dto.Email,
		passwordHash,
		nullableString(dto.Phone),
		dto.SpecialtyID,
		dto.LicenseNumber,
		now,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *DoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Doctor, error) {
	doctor, err := scanDoctor(r.db.QueryRow(ctx, doctorSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if err := r.loadWorkSchedule(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *DoctorRepo) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	doctor, err := scanDoctor(r.db.QueryRow(ctx, doctorSelect+` WHERE d.email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}

	if err := r.loadWorkSchedule(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *DoctorRepo) List(ctx context.Context) ([]domain.Doctor, error) {
	return r.list(ctx, doctorSelect+` ORDER BY d.name`)
}

func (r *DoctorRepo) ListBySpecialty(ctx context.Context, specialtyID uuid.UUID) ([]domain.Doctor, error) {
	return r.list(ctx, doctorSelect+` WHERE d.specialty_id = $1 ORDER BY d.name`, specialtyID)
}

func (r *DoctorRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Doctor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doctor row: %w", err)
		}
		doctors = append(doctors, *doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate doctor rows: %w", err)
	}

	for i := range doctors {
		if err := r.loadWorkSchedule(ctx, &doctors[i]); err != nil {
			return nil, err
		}
	}

	return doctors, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateDoctorDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}

	if dto.Email != nil {
		updateFields = append(updateFields, fmt.Sprintf("email = $%d", argCount))
		args = append(args, *dto.Email)
		argCount++
	}

	if dto.Phone != nil {
		updateFields = append(updateFields, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, *dto.Phone)
		argCount++
	}

	if dto.SpecialtyID != nil {
		updateFields = append(updateFields, fmt.Sprintf("specialty_id = $%d", argCount))
		args = append(args, *dto.SpecialtyID)
		argCount++
	}

	if dto.LicenseNumber != nil {
		updateFields = append(updateFields, fmt.Sprintf("license_number = $%d", argCount))
		args = append(args, *dto.LicenseNumber)
		argCount++
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE doctors SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE doctors SET photo_url = $1, updated_at = $2 WHERE id = $3`,
		nullableString(photoURL), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor photo: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) loadWorkSchedule(ctx context.Context, doctor *domain.Doctor) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active
		FROM work_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time
	`, doctor.ID)
	if err != nil {
		return fmt.Errorf("failed to load work schedule: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.WorkScheduleEntry, 0)
	for rows.Next() {
		var entry domain.WorkScheduleEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.DoctorID,
			&entry.DayOfWeek,
			&entry.StartTime,
			&entry.EndTime,
			&entry.IsActive,
		); err != nil {
			return fmt.Errorf("failed to scan work schedule row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate work schedule rows: %w", err)
	}

	doctor.WorkSchedule = entries
	return nil
}
