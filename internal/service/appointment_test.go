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
	"clinic/internal/repository"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]domain.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	conflict, _ := r.HasConflict(context.Background(), appointment.DoctorID, appointment.AppointmentDate, appointment.StartTime, appointment.EndTime, nil)
	if conflict {
		return nil, repository.ErrSlotTaken
	}
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	r.appointments[appointment.ID] = appointment
	return &appointment, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &appointment, nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	result := make([]domain.Appointment, 0)
	for _, appointment := range r.appointments {
		if filter.DoctorID != nil && appointment.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && appointment.PatientID != *filter.PatientID {
			continue
		}
		if filter.Status != nil && appointment.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && appointment.AppointmentDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && appointment.AppointmentDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, appointment)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, id uuid.UUID, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if dto.AppointmentDate != nil {
		date, err := time.Parse("2006-01-02", *dto.AppointmentDate)
		if err != nil {
			return nil, err
		}
		appointment.AppointmentDate = date
	}
	if dto.StartTime != nil {
		appointment.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		appointment.EndTime = *dto.EndTime
	}
	if dto.Status != nil {
		appointment.Status = *dto.Status
	}
	if dto.Reason != nil {
		appointment.Reason = *dto.Reason
	}
	if dto.Notes != nil {
		appointment.Notes = *dto.Notes
	}
	appointment.UpdatedAt = time.Now()
	r.appointments[id] = appointment
	return &appointment, nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) HasConflict(_ context.Context, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error) {
	for _, appointment := range r.appointments {
		if excludeID != nil && appointment.ID == *excludeID {
			continue
		}
		if appointment.DoctorID != doctorID || !appointment.AppointmentDate.Equal(date) {
			continue
		}
		if !appointment.IsActive() {
			continue
		}
		if appointment.StartTime < endTime && startTime < appointment.EndTime {
			return true, nil
		}
	}
	return false, nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]domain.Doctor
}

func newFakeDoctorRepo(doctors ...domain.Doctor) *fakeDoctorRepo {
	repo := &fakeDoctorRepo{doctors: make(map[uuid.UUID]domain.Doctor)}
	for _, doctor := range doctors {
		repo.doctors[doctor.ID] = doctor
	}
	return repo
}

func (r *fakeDoctorRepo) Create(_ context.Context, _ domain.CreateDoctorDTO, _ string) (*domain.Doctor, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doctor, nil
}

func (r *fakeDoctorRepo) GetByEmail(_ context.Context, _ string) (*domain.Doctor, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeDoctorRepo) List(_ context.Context) ([]domain.Doctor, error) { return nil, nil }

func (r *fakeDoctorRepo) ListBySpecialty(_ context.Context, _ uuid.UUID) ([]domain.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, _ uuid.UUID, _ domain.UpdateDoctorDTO) error {
	return nil
}

func (r *fakeDoctorRepo) UpdatePhotoURL(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (r *fakeDoctorRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

// nextWeekday returns the next future date falling on the given weekday,
// formatted for the booking API. Always at least one day ahead so past-date
// validation cannot trip.
func nextWeekday(day time.Weekday) string {
	date := time.Now().AddDate(0, 0, 1)
	for date.Weekday() != day {
		date = date.AddDate(0, 0, 1)
	}
	return date.Format("2006-01-02")
}

func newTestDoctor(start, end string, days ...time.Weekday) domain.Doctor {
	doctor := domain.Doctor{
		ID:          uuid.New(),
		Name:        "Dr. Chen",
		Email:       "chen@clinic.test",
		SpecialtyID: uuid.New(),
	}
	for _, day := range days {
		doctor.WorkSchedule = append(doctor.WorkSchedule, domain.WorkScheduleEntry{
			ID:        uuid.New(),
			DoctorID:  doctor.ID,
			DayOfWeek: int(day),
			StartTime: start,
			EndTime:   end,
			IsActive:  true,
		})
	}
	return doctor
}

func newTestAppointmentService(doctor domain.Doctor) (*AppointmentServiceImpl, *fakeAppointmentRepo) {
	repo := newFakeAppointmentRepo()
	svc := NewAppointmentService(repo, newFakeDoctorRepo(doctor), zap.NewNop())
	return svc, repo
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	doctor := newTestDoctor("09:00", "17:00", time.Monday)
	patientID := uuid.New()

	t.Run("books a free slot", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		created, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: nextWeekday(time.Monday),
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)
		assert.Equal(t, "10:30", created.EndTime)
		assert.Equal(t, domain.AppointmentStatusPending, created.Status)
		assert.Equal(t, doctor.SpecialtyID, created.SpecialtyID)
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        uuid.New(),
			AppointmentDate: nextWeekday(time.Monday),
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.EqualError(t, err, "Doctor not found")
	})

	t.Run("rejects missing patient identity", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.Create(ctx, uuid.Nil, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: nextWeekday(time.Monday),
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalid(err))
		assert.EqualError(t, err, "Patient not authenticated")
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: "not-a-date",
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid date")
	})

	t.Run("rejects past date", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: "2020-01-06",
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalid(err))
		assert.EqualError(t, err, "Appointment date cannot be in the past")
	})

	t.Run("rejects time outside the work schedule", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: nextWeekday(time.Monday),
			StartTime:       "18:00",
			Reason:          "checkup",
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Doctor is not available at this time")
	})

	t.Run("rejects day the doctor does not work", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: nextWeekday(time.Tuesday),
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Doctor is not available at this time")
	})

	t.Run("rejects a taken slot", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		date := nextWeekday(time.Monday)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, uuid.New(), domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.EqualError(t, err, "This time slot is already booked")
	})

	t.Run("allows a back-to-back slot", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		date := nextWeekday(time.Monday)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)

		created, err := svc.Create(ctx, uuid.New(), domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "10:30",
			Reason:          "checkup",
		})
		require.NoError(t, err)
		assert.Equal(t, "11:00", created.EndTime)
	})

	t.Run("frees the slot after cancellation", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		date := nextWeekday(time.Monday)

		created, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID)
		require.NoError(t, err)

		_, err = svc.Create(ctx, uuid.New(), domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		assert.NoError(t, err)
	})
}

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()

	t.Run("generates the slot grid for a schedule entry", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "11:00", time.Monday)
		svc, _ := newTestAppointmentService(doctor)

		slots, err := svc.GetAvailableSlots(ctx, doctor.ID, nextWeekday(time.Monday))
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.Equal(t, "09:00", slots[0].StartTime)
		assert.Equal(t, "09:30", slots[0].EndTime)
		assert.Equal(t, "10:30", slots[3].StartTime)
		assert.Equal(t, "11:00", slots[3].EndTime)
		for _, slot := range slots {
			assert.True(t, slot.IsAvailable)
		}
	})

	t.Run("drops a tail shorter than one slot", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "10:45", time.Monday)
		svc, _ := newTestAppointmentService(doctor)

		slots, err := svc.GetAvailableSlots(ctx, doctor.ID, nextWeekday(time.Monday))
		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, "10:30", slots[2].EndTime)
	})

	t.Run("marks booked slots unavailable", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "11:00", time.Monday)
		svc, _ := newTestAppointmentService(doctor)
		date := nextWeekday(time.Monday)

		_, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "09:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)

		slots, err := svc.GetAvailableSlots(ctx, doctor.ID, date)
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.False(t, slots[0].IsAvailable)
		assert.True(t, slots[1].IsAvailable)
		assert.True(t, slots[2].IsAvailable)
		assert.True(t, slots[3].IsAvailable)
	})

	t.Run("cancelled booking still marks its slot unavailable", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "11:00", time.Monday)
		svc, _ := newTestAppointmentService(doctor)
		date := nextWeekday(time.Monday)

		created, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "09:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID)
		require.NoError(t, err)

		// The day query feeding the grid does not filter by status, so a
		// cancelled booking keeps shading its slot even though conflict
		// checks ignore it and the slot can be booked again.
		slots, err := svc.GetAvailableSlots(ctx, doctor.ID, date)
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.False(t, slots[0].IsAvailable)
		assert.True(t, slots[1].IsAvailable)
		assert.True(t, slots[2].IsAvailable)
		assert.True(t, slots[3].IsAvailable)

		_, err = svc.Create(ctx, uuid.New(), domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			StartTime:       "09:00",
			Reason:          "checkup",
		})
		assert.NoError(t, err)
	})

	t.Run("concatenates slots from multiple same-day entries", func(t *testing.T) {
		doctor := domain.Doctor{
			ID:          uuid.New(),
			Name:        "Dr. Chen",
			Email:       "chen@clinic.test",
			SpecialtyID: uuid.New(),
			WorkSchedule: []domain.WorkScheduleEntry{
				{ID: uuid.New(), DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "10:00", IsActive: true},
				{ID: uuid.New(), DayOfWeek: int(time.Monday), StartTime: "14:00", EndTime: "15:00", IsActive: true},
			},
		}
		svc, _ := newTestAppointmentService(doctor)

		slots, err := svc.GetAvailableSlots(ctx, doctor.ID, nextWeekday(time.Monday))
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.Equal(t, "09:00", slots[0].StartTime)
		assert.Equal(t, "09:30", slots[1].StartTime)
		assert.Equal(t, "14:00", slots[2].StartTime)
		assert.Equal(t, "14:30", slots[3].StartTime)
	})

	t.Run("returns empty for a day without schedule", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "11:00", time.Monday)
		svc, _ := newTestAppointmentService(doctor)

		slots, err := svc.GetAvailableSlots(ctx, doctor.ID, nextWeekday(time.Sunday))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "11:00", time.Monday)
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.GetAvailableSlots(ctx, doctor.ID, "06-01-2026")
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid date")
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "11:00", time.Monday)
		svc, _ := newTestAppointmentService(doctor)

		_, err := svc.GetAvailableSlots(ctx, uuid.New(), nextWeekday(time.Monday))
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()
	doctor := newTestDoctor("09:00", "17:00", time.Monday)
	patientID := uuid.New()

	book := func(t *testing.T, svc *AppointmentServiceImpl, start string) *domain.Appointment {
		t.Helper()
		created, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: nextWeekday(time.Monday),
			StartTime:       start,
			Reason:          "checkup",
		})
		require.NoError(t, err)
		return created
	}

	t.Run("reschedules within the work schedule", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		created := book(t, svc, "10:00")

		newStart, newEnd := "11:00", "11:30"
		updated, err := svc.Update(ctx, created.ID, domain.UpdateAppointmentDTO{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, "11:00", updated.StartTime)
		assert.Equal(t, "11:30", updated.EndTime)
	})

	t.Run("ignores its own slot when rescheduling", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		created := book(t, svc, "10:00")

		// Same start, only the reason changes along with an explicit
		// identical time. The existing booking must not conflict with itself.
		sameStart, sameEnd := created.StartTime, created.EndTime
		_, err := svc.Update(ctx, created.ID, domain.UpdateAppointmentDTO{
			StartTime: &sameStart,
			EndTime:   &sameEnd,
		})
		assert.NoError(t, err)
	})

	t.Run("rejects moving onto another booking", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		book(t, svc, "10:00")
		second := book(t, svc, "11:00")

		newStart, newEnd := "10:00", "10:30"
		_, err := svc.Update(ctx, second.ID, domain.UpdateAppointmentDTO{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.EqualError(t, err, "This time slot is already booked")
	})

	t.Run("rejects rescheduling a cancelled appointment", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		created := book(t, svc, "10:00")

		_, err := svc.Cancel(ctx, created.ID)
		require.NoError(t, err)

		newStart := "12:00"
		_, err = svc.Update(ctx, created.ID, domain.UpdateAppointmentDTO{StartTime: &newStart})
		require.Error(t, err)
		assert.EqualError(t, err, "This appointment cannot be modified")
	})

	t.Run("allows note changes on a completed appointment", func(t *testing.T) {
		svc, repo := newTestAppointmentService(doctor)
		created := book(t, svc, "10:00")

		completed := domain.AppointmentStatusCompleted
		_, err := repo.Update(ctx, created.ID, domain.UpdateAppointmentDTO{Status: &completed})
		require.NoError(t, err)

		notes := "follow-up in six months"
		updated, err := svc.Update(ctx, created.ID, domain.UpdateAppointmentDTO{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, notes, updated.Notes)
	})

	t.Run("rejects unknown appointment", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)

		notes := "anything"
		_, err := svc.Update(ctx, uuid.New(), domain.UpdateAppointmentDTO{Notes: &notes})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.EqualError(t, err, "Appointment not found")
	})
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()
	doctor := newTestDoctor("09:00", "17:00", time.Monday)
	patientID := uuid.New()

	t.Run("cancels an active appointment", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		created, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: nextWeekday(time.Monday),
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)

		cancelled, err := svc.Cancel(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentStatusCancelled, cancelled.Status)
	})

	t.Run("rejects cancelling twice", func(t *testing.T) {
		svc, _ := newTestAppointmentService(doctor)
		created, err := svc.Create(ctx, patientID, domain.CreateAppointmentDTO{
			DoctorID:        doctor.ID,
			AppointmentDate: nextWeekday(time.Monday),
			StartTime:       "10:00",
			Reason:          "checkup",
		})
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.EqualError(t, err, "This appointment cannot be cancelled")
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	doctor := newTestDoctor("09:00", "17:00", time.Monday)

	svc, _ := newTestAppointmentService(doctor)
	created, err := svc.Create(ctx, uuid.New(), domain.CreateAppointmentDTO{
		DoctorID:        doctor.ID,
		AppointmentDate: nextWeekday(time.Monday),
		StartTime:       "10:00",
		Reason:          "checkup",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.EqualError(t, err, "Appointment not found or could not be deleted")
}
