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
)

type fakeFileStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeFileStorage) UploadFile(_ context.Context, _ []byte, filename string) (string, error) {
	f.uploaded = append(f.uploaded, filename)
	return "https://clinic-photos.s3.us-east-1.amazonaws.com/doctors/" + filename, nil
}

func (f *fakeFileStorage) DeleteFile(_ context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeFileStorage) GetPresignedURL(_ context.Context, fileURL string, _ time.Duration) (string, error) {
	return fileURL + "?signature=abc", nil
}

func TestDoctorPhotoFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads a photo and returns its URL", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "17:00", time.Monday)
		fileStorage := &fakeFileStorage{}
		svc := NewDoctorService(newFakeDoctorRepo(doctor), nil, fileStorage, zap.NewNop())

		url, err := svc.UploadPhoto(ctx, doctor.ID, []byte("image bytes"), "portrait.jpg")
		require.NoError(t, err)
		assert.Contains(t, url, "portrait.jpg")
		assert.Equal(t, []string{"portrait.jpg"}, fileStorage.uploaded)
	})

	t.Run("presigns the stored photo URL", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "17:00", time.Monday)
		doctor.PhotoURL = "https://clinic-photos.s3.us-east-1.amazonaws.com/doctors/portrait.jpg"
		svc := NewDoctorService(newFakeDoctorRepo(doctor), nil, &fakeFileStorage{}, zap.NewNop())

		url, err := svc.GetPhotoURL(ctx, doctor.ID)
		require.NoError(t, err)
		assert.Equal(t, doctor.PhotoURL+"?signature=abc", url)
	})

	t.Run("reports missing photo as not found", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "17:00", time.Monday)
		svc := NewDoctorService(newFakeDoctorRepo(doctor), nil, &fakeFileStorage{}, zap.NewNop())

		_, err := svc.GetPhotoURL(ctx, doctor.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.EqualError(t, err, "Photo not found")
	})

	t.Run("reports unknown doctor as not found", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "17:00", time.Monday)
		svc := NewDoctorService(newFakeDoctorRepo(doctor), nil, &fakeFileStorage{}, zap.NewNop())

		_, err := svc.GetPhotoURL(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.EqualError(t, err, "Doctor not found")
	})

	t.Run("fails without configured storage", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "17:00", time.Monday)
		svc := NewDoctorService(newFakeDoctorRepo(doctor), nil, nil, zap.NewNop())

		_, err := svc.UploadPhoto(ctx, doctor.ID, []byte("image bytes"), "portrait.jpg")
		require.Error(t, err)
		assert.EqualError(t, err, "File storage is not configured")

		_, err = svc.GetPhotoURL(ctx, doctor.ID)
		require.Error(t, err)
		assert.EqualError(t, err, "File storage is not configured")
	})

	t.Run("deletes the stored photo from storage", func(t *testing.T) {
		doctor := newTestDoctor("09:00", "17:00", time.Monday)
		doctor.PhotoURL = "https://clinic-photos.s3.us-east-1.amazonaws.com/doctors/portrait.jpg"
		fileStorage := &fakeFileStorage{}
		svc := NewDoctorService(newFakeDoctorRepo(doctor), nil, fileStorage, zap.NewNop())

		require.NoError(t, svc.DeletePhoto(ctx, doctor.ID))
		assert.Equal(t, []string{doctor.PhotoURL}, fileStorage.deleted)
	})
}
