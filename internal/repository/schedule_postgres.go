package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type WorkScheduleRepo struct {
	db *pgxpool.Pool
}

func NewWorkScheduleRepository(db *pgxpool.Pool) *WorkScheduleRepo {
	return &WorkScheduleRepo{
		db: db,
	}
}

func (r *WorkScheduleRepo) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]domain.WorkScheduleEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active
		FROM work_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time
	`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work schedules: %w", err)
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
			return nil, fmt.Errorf("failed to scan work schedule row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work schedule rows: %w", err)
	}

	return entries, nil
}

// ReplaceForDoctor swaps the doctor's whole weekly schedule in one
// transaction.
func (r *WorkScheduleRepo) ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, entries []domain.WorkScheduleEntryDTO) ([]domain.WorkScheduleEntry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM work_schedules WHERE doctor_id = $1`, doctorID); err != nil {
		return nil, fmt.Errorf("failed to clear work schedules: %w", err)
	}

	created := make([]domain.WorkScheduleEntry, 0, len(entries))
	for _, dto := range entries {
		entry := domain.WorkScheduleEntry{
			ID:        uuid.New(),
			DoctorID:  doctorID,
			DayOfWeek: dto.DayOfWeek,
			StartTime: dto.StartTime,
			EndTime:   dto.EndTime,
			IsActive:  dto.IsActive,
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO work_schedules (id, doctor_id, day_of_week, start_time, end_time, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, entry.ID, entry.DoctorID, entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to insert work schedule: %w", err)
		}

		created = append(created, entry)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}
