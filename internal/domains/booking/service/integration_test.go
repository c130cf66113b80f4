package service_test

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/sqlite"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/schema"
	"hotel/internal/domains/booking/service"
	roomRepo "hotel/internal/domains/room/repository"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreService(t *testing.T) service.Booking {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "hotel.db"), 5000, 8)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := &sqlite.Connection{DB: db}
	otl := mocks.NewOtel()

	require.NoError(t, schema.New(conn, otl, nil).EnsureSchema(context.Background()))

	return service.New(repository.New(conn, otl), roomRepo.New(&config.Config{}), otl)
}

func TestBookingService_ConcurrentCreatesAdmitOne(t *testing.T) {
	svc := newStoreService(t)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for i := range attempts {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			req := validRequest()
			req.GuestName = dto.Field("Guest " + string(rune('A'+i)))

			_, err := svc.Create(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				created++
			case failure.GetCode(err) == http.StatusConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	all, err := svc.List(context.Background(), gDto.QueryParams{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookingService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newStoreService(t)

	first, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	next := validRequest()
	next.CheckInDate = "2024-06-05"
	next.CheckOutDate = "2024-06-07"

	second, err := svc.Create(ctx, next)
	require.NoError(t, err, "check-out day is free for the next check-in")

	moved := next
	moved.CheckInDate = "2024-06-04"

	_, err = svc.Update(ctx, second.ID, moved)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	same := validRequest()
	same.GuestName = "Ana L."

	updated, err := svc.Update(ctx, first.ID, same)
	require.NoError(t, err, "a booking does not conflict with itself")
	assert.Equal(t, "Ana L.", updated.GuestName)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana L.", got.GuestName)
	assert.Equal(t, "2024-06-01", got.CheckInDate)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(ctx, first.ID)))

	all, err := svc.List(ctx, gDto.QueryParams{SortBy: "check_in_date", SortDir: gDto.SortDirAsc})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestBookingService_ListOrdersByCheckInThenID(t *testing.T) {
	ctx := context.Background()
	svc := newStoreService(t)

	stays := []struct{ room, in, out string }{
		{"101", "2024-06-10", "2024-06-12"},
		{"102", "2024-06-01", "2024-06-03"},
		{"101", "2024-06-01", "2024-06-02"},
	}

	ids := make([]int64, 0, len(stays))

	for _, stay := range stays {
		req := validRequest()
		req.RoomNumber = dto.Field(stay.room)
		req.CheckInDate = dto.Field(stay.in)
		req.CheckOutDate = dto.Field(stay.out)
		req.Members = "1"

		created, err := svc.Create(ctx, req)
		require.NoError(t, err)

		ids = append(ids, created.ID)
	}

	all, err := svc.List(ctx, gDto.QueryParams{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{ids[1], ids[2], ids[0]}, []int64{all[0].ID, all[1].ID, all[2].ID})
}
