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

type SpecialtyRepo struct {
	db *pgxpool.Pool
}

func NewSpecialtyRepository(db *pgxpool.Pool) *SpecialtyRepo {
	return &SpecialtyRepo{
		db: db,
	}
}

const specialtyColumns = `id, name, description, created_at, updated_at`

func scanSpecialty(row pgx.Row) (*domain.Specialty, error) {
	var specialty domain.Specialty
	err := row.Scan(
		&specialty.ID,
		&specialty.Name,
		&specialty.Description,
		&specialty.CreatedAt,
		&specialty.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &specialty, nil
}

func (r *SpecialtyRepo) Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (*domain.Specialty, error) {
	query := `
		INSERT INTO specialties (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + specialtyColumns

	specialty, err := scanSpecialty(r.db.QueryRow(ctx, query,
		uuid.New(),
		dto.Name,
		dto.Description,
		time.Now(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create specialty: %w", err)
	}

	return specialty, nil
}

func (r *SpecialtyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Specialty, error) {
	query := `SELECT ` + specialtyColumns + ` FROM specialties WHERE id = $1`

	specialty, err := scanSpecialty(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get specialty: %w", err)
	}

	return specialty, nil
}

func (r *SpecialtyRepo) List(ctx context.Context) ([]domain.Specialty, error) {
	rows, err := r.db.Query(ctx, `SELECT `+specialtyColumns+` FROM specialties ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	defer rows.Close()

	specialties := make([]domain.Specialty, 0)
	for rows.Next() {
		specialty, err := scanSpecialty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan specialty row: %w", err)
		}
		specialties = append(specialties, *specialty)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate specialty rows: %w", err)
	}

	return specialties, nil
}

func (r *SpecialtyRepo) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateSpecialtyDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}

	if dto.Description != nil {
		updateFields = append(updateFields, fmt.Sprintf("description = $%d", argCount))
		args = append(args, *dto.Description)
		argCount++
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE specialties SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update specialty: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *SpecialtyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete specialty: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *SpecialtyRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM specialties WHERE LOWER(name) = LOWER($1)`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check specialty name: %w", err)
	}
	return count > 0, nil
}
