package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	"hotel/infras/sqlite"
	"hotel/internal/domains/backup/service"
	"hotel/internal/domains/booking/schema"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func openDB(t *testing.T) *sqlite.Connection {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "hotel.db"), 5000, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE notes (body TEXT)`)
	require.NoError(t, err)

	return &sqlite.Connection{DB: db}
}

func TestBackupService_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.Directory = "snapshots"

	svc := service.New(openDB(t), storage, cfg, mocks.NewOtel())

	storage.EXPECT().
		UploadFileBytes(gomock.Any(), "", "snapshots", gomock.Any(), constant.ContentTypeSQLite, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, directory, name, _ string, data []byte) (string, error) {
			assert.True(t, strings.HasPrefix(name, "hotel_pre-migration_"))
			assert.True(t, bytes.HasPrefix(data, []byte("SQLite format 3\x00")))

			return "s3://bucket/" + directory + "/" + name, nil
		})

	location, err := svc.Snapshot(context.Background(), "pre-migration")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location, "s3://bucket/snapshots/hotel_pre-migration_"))
}

func TestBackupService_Disabled(t *testing.T) {
	svc := service.New(openDB(t), nil, &config.Config{}, mocks.NewOtel())

	_, err := svc.Snapshot(context.Background(), "manual")
	assert.ErrorIs(t, err, schema.ErrSnapshotDisabled)

	_, err = svc.TakeSnapshot(context.Background())
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}

func TestBackupService_UploadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := s3Mocks.NewMockS3(ctrl)
	svc := service.New(openDB(t), storage, &config.Config{}, mocks.NewOtel())

	storage.EXPECT().
		UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("access denied"))

	_, err := svc.TakeSnapshot(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
