package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic/internal/apperrors"
	"clinic/internal/domain"
)

type fakeScheduleRepo struct {
	entries map[uuid.UUID][]domain.WorkScheduleEntry
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{entries: make(map[uuid.UUID][]domain.WorkScheduleEntry)}
}

func (r *fakeScheduleRepo) GetByDoctorID(_ context.Context, doctorID uuid.UUID) ([]domain.WorkScheduleEntry, error) {
	return r.entries[doctorID], nil
}

func (r *fakeScheduleRepo) ReplaceForDoctor(_ context.Context, doctorID uuid.UUID, dtos []domain.WorkScheduleEntryDTO) ([]domain.WorkScheduleEntry, error) {
	entries := make([]domain.WorkScheduleEntry, 0, len(dtos))
	for _, dto := range dtos {
		entries = append(entries, domain.WorkScheduleEntry{
			ID:        uuid.New(),
			DoctorID:  doctorID,
			DayOfWeek: dto.DayOfWeek,
			StartTime: dto.StartTime,
			EndTime:   dto.EndTime,
			IsActive:  dto.IsActive,
		})
	}
	r.entries[doctorID] = entries
	return entries, nil
}

func TestReplaceWorkSchedule(t *testing.T) {
	ctx := context.Background()
	doctor := newTestDoctor("09:00", "17:00", time.Monday)

	newService := func() *WorkScheduleServiceImpl {
		return NewWorkScheduleService(newFakeScheduleRepo(), newFakeDoctorRepo(doctor), zap.NewNop())
	}

	t.Run("replaces the weekly schedule", func(t *testing.T) {
		svc := newService()

		entries, err := svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00", IsActive: true},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00", IsActive: true},
			{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, doctor.ID, entries[0].DoctorID)
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		svc := newService()

		_, err := svc.Replace(ctx, uuid.New(), nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.EqualError(t, err, "Doctor not found")
	})

	t.Run("rejects out-of-range day", func(t *testing.T) {
		svc := newService()

		_, err := svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Day of week must be between 0 and 6")
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		svc := newService()

		_, err := svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00", IsActive: true},
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid start time format, expected HH:mm")

		_, err = svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00", IsActive: true},
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid end time format, expected HH:mm")
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		svc := newService()

		_, err := svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00", IsActive: true},
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Start time must be before end time")
	})

	t.Run("rejects overlapping active entries on the same day", func(t *testing.T) {
		svc := newService()

		_, err := svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00", IsActive: true},
			{DayOfWeek: 1, StartTime: "12:00", EndTime: "17:00", IsActive: true},
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalid(err))
		assert.EqualError(t, err, "Schedule entries for the same day cannot overlap")
	})

	t.Run("allows touching windows on the same day", func(t *testing.T) {
		svc := newService()

		_, err := svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00", IsActive: true},
			{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsActive: true},
		})
		assert.NoError(t, err)
	})

	t.Run("ignores inactive entries in the overlap check", func(t *testing.T) {
		svc := newService()

		_, err := svc.Replace(ctx, doctor.ID, []domain.WorkScheduleEntryDTO{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00", IsActive: true},
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00", IsActive: false},
		})
		assert.NoError(t, err)
	})
}
