package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/infras/sqlite"
	"hotel/internal/domains/backup/model/dto"
	"hotel/internal/domains/booking/schema"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const snapshotTimeLayout = "20060102T150405Z"

// Backup copies the live database into object storage.
type Backup interface {
	Snapshot(ctx context.Context, label string) (string, error)
	TakeSnapshot(ctx context.Context) (dto.SnapshotResponse, error)
}

type serviceImpl struct {
	db   *sqlite.Connection
	s3   s3.S3
	cfg  *config.Config
	otel otel.Otel
}

// New accepts a nil storage client; every snapshot then reports
// schema.ErrSnapshotDisabled.
func New(db *sqlite.Connection, storage s3.S3, cfg *config.Config, otel otel.Otel) Backup {
	return &serviceImpl{
		db:   db,
		s3:   storage,
		cfg:  cfg,
		otel: otel,
	}
}

// Snapshot writes a consistent copy with VACUUM INTO and uploads it. It
// must not run inside a transaction.
func (s *serviceImpl) Snapshot(ctx context.Context, label string) (location string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".backup.Snapshot")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if s.s3 == nil {
		return constant.Empty, schema.ErrSnapshotDisabled
	}

	dir, err := os.MkdirTemp("", "hotel-snapshot-")
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "snapshot.db")

	if _, err = s.db.DB.ExecContext(ctx, "VACUUM INTO ?", file); err != nil {
		log.Error().Err(err).Msg("failed to vacuum database into snapshot")

		return constant.Empty, fmt.Errorf("failed to write snapshot: %w", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read snapshot: %w", err)
	}

	name := fmt.Sprintf("hotel_%s_%s.db", label, timezone.Now().UTC().Format(snapshotTimeLayout))

	location, err = s.s3.UploadFileBytes(ctx, constant.Empty, s.cfg.External.S3.Directory, name, constant.ContentTypeSQLite, data)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	log.Info().Str("location", location).Int("bytes", len(data)).Msg("Database snapshot uploaded")

	return location, nil
}

func (s *serviceImpl) TakeSnapshot(ctx context.Context) (res dto.SnapshotResponse, err error) {
	location, err := s.Snapshot(ctx, dto.LabelManual)

	switch {
	case errors.Is(err, schema.ErrSnapshotDisabled):
		return res, failure.Unavailable(dto.MessageDisabled) //nolint:wrapcheck
	case err != nil:
		return res, failure.Internal(dto.MessageFailed, err) //nolint:wrapcheck
	}

	res.Location = location

	return res, nil
}
