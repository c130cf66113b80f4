package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/sqlite"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/schema"
	"hotel/shared"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) repository.Booking {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "hotel.db"), 5000, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := &sqlite.Connection{DB: db}
	require.NoError(t, schema.New(conn, mocks.NewOtel(), nil).EnsureSchema(context.Background()))

	return repository.New(conn, mocks.NewOtel())
}

func insert(t *testing.T, repo repository.Booking, booking model.Booking) int64 {
	t.Helper()

	var id int64

	require.NoError(t, repo.Transact(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		id, err = repo.InsertTx(ctx, tx, booking)

		return err
	}))

	return id
}

func booking(room, in, out string) model.Booking {
	return model.Booking{
		GuestName:    "Ana",
		GuestPhone:   "0812345678",
		RoomNumber:   room,
		CheckInDate:  in,
		CheckOutDate: out,
		Members:      1,
	}
}

func TestOverlapFilter(t *testing.T) {
	stay := model.Stay{RoomNumber: "101", CheckIn: "2024-06-01", CheckOut: "2024-06-05"}

	filter := repository.OverlapFilter(stay, 0)
	where, args := filter.GetWhereClause()
	assert.Equal(t, "(room_number = :room_number AND check_in_date < :stay_end AND check_out_date > :stay_start)", where)
	assert.Equal(t, map[string]any{"room_number": "101", "stay_end": "2024-06-05", "stay_start": "2024-06-01"}, args)

	filter = repository.OverlapFilter(stay, 3)
	where, args = filter.GetWhereClause()
	assert.Contains(t, where, "AND id != :exclude_id")
	assert.Equal(t, int64(3), args["exclude_id"])
}

func TestBookingRepository_FindOverlap(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	id := insert(t, repo, booking("101", "2024-06-01", "2024-06-05"))

	tests := []struct {
		name      string
		stay      model.Stay
		excludeID int64
		want      int64
	}{
		{name: "inside", stay: model.Stay{RoomNumber: "101", CheckIn: "2024-06-02", CheckOut: "2024-06-03"}, want: id},
		{name: "covering", stay: model.Stay{RoomNumber: "101", CheckIn: "2024-05-30", CheckOut: "2024-06-10"}, want: id},
		{name: "check-in on check-out day", stay: model.Stay{RoomNumber: "101", CheckIn: "2024-06-05", CheckOut: "2024-06-07"}},
		{name: "check-out on check-in day", stay: model.Stay{RoomNumber: "101", CheckIn: "2024-05-28", CheckOut: "2024-06-01"}},
		{name: "other room", stay: model.Stay{RoomNumber: "102", CheckIn: "2024-06-02", CheckOut: "2024-06-03"}},
		{name: "excluded self", stay: model.Stay{RoomNumber: "101", CheckIn: "2024-06-02", CheckOut: "2024-06-03"}, excludeID: id},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindOverlap(ctx, tt.stay, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingRepository_TriggerRejectionIsErrOverlap(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	insert(t, repo, booking("101", "2024-06-01", "2024-06-05"))
	other := insert(t, repo, booking("101", "2024-06-05", "2024-06-08"))

	err := repo.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := repo.InsertTx(ctx, tx, booking("101", "2024-06-03", "2024-06-04"))

		return err
	})
	assert.True(t, errors.Is(err, repository.ErrOverlap))

	err = repo.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := repo.UpdateTx(ctx, tx, map[string]any{model.FieldCheckInDate: "2024-06-04"}, shared.FilterByID(other))

		return err
	})
	assert.True(t, errors.Is(err, repository.ErrOverlap))
}

func TestBookingRepository_ReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	id := insert(t, repo, booking("103", "2024-07-01", "2024-07-03"))

	got, err := repo.Get(ctx, shared.FilterByID(id))
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", got.CheckInDate)
	assert.Equal(t, "2024-07-03", got.CheckOutDate)

	err = repo.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		exist, err := repo.ExistTx(ctx, tx, shared.FilterByID(id))
		require.NoError(t, err)
		assert.True(t, exist)

		affected, err := repo.UpdateTx(ctx, tx, map[string]any{model.FieldMembers: 4}, shared.FilterByID(id))
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		return nil
	})
	require.NoError(t, err)

	got, err = repo.Get(ctx, shared.FilterByID(id))
	require.NoError(t, err)
	assert.Equal(t, 4, got.Members)

	affected, err := repo.Delete(ctx, shared.FilterByID(id))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, shared.FilterByID(id))
	require.NoError(t, err)
	assert.Zero(t, affected)
}
