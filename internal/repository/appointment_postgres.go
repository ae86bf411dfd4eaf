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

const uniqueViolationCode = "23505"

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

const appointmentColumns = `id, patient_id, doctor_id, specialty_id, appointment_date, start_time, end_time, status, reason, notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var notes *string

	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.SpecialtyID,
		&appointment.AppointmentDate,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.Reason,
		&notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes != nil {
		appointment.Notes = *notes
	}

	return &appointment, nil
}

// Create inserts the appointment after re-checking the slot inside the same
// transaction. The partial unique index on active appointments closes the
// remaining race between two concurrent inserts.
func (r *AppointmentRepo) Create(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	checkQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND status IN ('PENDING', 'CONFIRMED')
		AND start_time < $4
		AND end_time > $3
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery,
		appointment.DoctorID,
		appointment.AppointmentDate,
		appointment.StartTime,
		appointment.EndTime,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}

	if count > 0 {
		return nil, ErrSlotTaken
	}

	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, specialty_id, appointment_date, start_time, end_time, status, reason, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + appointmentColumns

	now := time.Now()
	created, err := scanAppointment(tx.QueryRow(ctx, query,
		uuid.New(),
		appointment.PatientID,
		appointment.DoctorID,
		appointment.SpecialtyID,
		appointment.AppointmentDate,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.Reason,
		nullableString(appointment.Notes),
		now,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.SpecialtyID != nil {
		conditions = append(conditions, fmt.Sprintf("specialty_id = $%d", argCount))
		args = append(args, *filter.SpecialtyID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("appointment_date >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("appointment_date <= $%d", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY appointment_date ASC, start_time ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.AppointmentDate != nil {
		date, err := time.Parse("2006-01-02", *dto.AppointmentDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse appointment date: %w", err)
		}
		updateFields = append(updateFields, fmt.Sprintf("appointment_date = $%d", argCount))
		args = append(args, date)
		argCount++
	}

	if dto.StartTime != nil {
		updateFields = append(updateFields, fmt.Sprintf("start_time = $%d", argCount))
		args = append(args, *dto.StartTime)
		argCount++
	}

	if dto.EndTime != nil {
		updateFields = append(updateFields, fmt.Sprintf("end_time = $%d", argCount))
		args = append(args, *dto.EndTime)
		argCount++
	}

	if dto.Status != nil {
		updateFields = append(updateFields, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *dto.Status)
		argCount++
	}

	if dto.Reason != nil {
		updateFields = append(updateFields, fmt.Sprintf("reason = $%d", argCount))
		args = append(args, *dto.Reason)
		argCount++
	}

	if dto.Notes != nil {
		updateFields = append(updateFields, fmt.Sprintf("notes = $%d", argCount))
		args = append(args, *dto.Notes)
		argCount++
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE appointments
		SET %s
		WHERE id = $%d
		RETURNING `+appointmentColumns,
		strings.Join(updateFields, ", "), argCount)

	updated, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	return updated, nil
}

// Delete removes the appointment row regardless of status.
func (r *AppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// HasConflict reports whether an active appointment for the doctor on the
// given date overlaps [startTime, endTime). Touching ranges do not conflict.
func (r *AppointmentRepo) HasConflict(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND status IN ('PENDING', 'CONFIRMED')
		AND start_time < $4
		AND end_time > $3
	`
	args := []interface{}{doctorID, date, startTime, endTime}

	if excludeID != nil {
		query += " AND id != $5"
		args = append(args, *excludeID)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check for conflicts: %w", err)
	}

	return count > 0, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
