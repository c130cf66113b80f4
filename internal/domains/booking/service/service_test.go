package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *bookingMocks.MockBooking
	rooms *roomMocks.MockRoom
	svc   service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  bookingMocks.NewMockBooking(ctrl),
		rooms: roomMocks.NewMockRoom(ctrl),
	}
	f.svc = service.New(f.repo, f.rooms, mocks.NewOtel())

	f.rooms.EXPECT().Catalog().Return(roomModel.NewCatalog(nil)).AnyTimes()

	return f
}

// runTx makes Transact call its function directly, the way a committed
// transaction would.
func (f fixture) runTx() *gomock.Call {
	return f.repo.EXPECT().
		Transact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
			return fn(ctx, nil)
		})
}

func validRequest() dto.BookingRequest {
	return dto.BookingRequest{
		GuestName:    "Ana Lima",
		GuestPhone:   "0812345678",
		RoomNumber:   "102",
		CheckInDate:  "2024-06-01",
		CheckOutDate: "2024-06-05",
		Members:      "3",
	}
}

func TestBookingService_Create(t *testing.T) {
	stay := model.Stay{RoomNumber: "102", CheckIn: "2024-06-01", CheckOut: "2024-06-05"}

	t.Run("admits a free stay", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.repo.EXPECT().FindOverlapTx(gomock.Any(), gomock.Any(), stay, int64(0)).Return(int64(0), nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), model.Booking{
			GuestName:    "Ana Lima",
			GuestPhone:   "0812345678",
			RoomNumber:   "102",
			CheckInDate:  "2024-06-01",
			CheckOutDate: "2024-06-05",
			Members:      3,
		}).Return(int64(42), nil)

		res, err := f.svc.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
		assert.Equal(t, 3, res.Members)
	})

	t.Run("validation failure never touches the store", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.Members = "4"

		_, err := f.svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "Members must be between 1 and 3 for Room 102", err.Error())
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.repo.EXPECT().FindOverlapTx(gomock.Any(), gomock.Any(), stay, int64(0)).Return(int64(7), nil)

		_, err := f.svc.Create(context.Background(), validRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "Room 102 is already booked for the selected dates", err.Error())
	})

	t.Run("trigger rejection is a conflict", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.repo.EXPECT().FindOverlapTx(gomock.Any(), gomock.Any(), stay, int64(0)).Return(int64(0), nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), repository.ErrOverlap)

		_, err := f.svc.Create(context.Background(), validRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("storage failure is hidden", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.repo.EXPECT().FindOverlapTx(gomock.Any(), gomock.Any(), stay, int64(0)).Return(int64(0), errors.New("disk I/O error"))

		_, err := f.svc.Create(context.Background(), validRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, "Failed to create booking", err.Error())
	})
}

func TestBookingService_Update(t *testing.T) {
	stay := model.Stay{RoomNumber: "102", CheckIn: "2024-06-01", CheckOut: "2024-06-05"}

	t.Run("excludes itself from the overlap check", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), shared.FilterByID(5)).Return(true, nil)
		f.repo.EXPECT().FindOverlapTx(gomock.Any(), gomock.Any(), stay, int64(5)).Return(int64(0), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{
			"guest_name":     "Ana Lima",
			"guest_phone":    "0812345678",
			"room_number":    "102",
			"check_in_date":  "2024-06-01",
			"check_out_date": "2024-06-05",
			"members":        3,
		}, shared.FilterByID(5)).Return(int64(1), nil)

		res, err := f.svc.Update(context.Background(), 5, validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.ID)
		assert.Equal(t, "Ana Lima", res.GuestName)
	})

	t.Run("missing booking is not found before any conflict", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), shared.FilterByID(5)).Return(false, nil)

		_, err := f.svc.Update(context.Background(), 5, validRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, dto.MessageNotFound, err.Error())
	})

	t.Run("overlap with another booking is a conflict", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), shared.FilterByID(5)).Return(true, nil)
		f.repo.EXPECT().FindOverlapTx(gomock.Any(), gomock.Any(), stay, int64(5)).Return(int64(6), nil)

		_, err := f.svc.Update(context.Background(), 5, validRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("invalid request", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.CheckOutDate = req.CheckInDate

		_, err := f.svc.Update(context.Background(), 5, req)
		require.Error(t, err)
		assert.Equal(t, dto.MessageDateOrder, err.Error())
	})
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		repoErr  error
		wantCode int
	}{
		{name: "deleted", affected: 1},
		{name: "missing id", affected: 0, wantCode: http.StatusNotFound},
		{name: "storage failure", repoErr: errors.New("database is locked"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Delete(gomock.Any(), shared.FilterByID(9)).Return(tt.affected, tt.repoErr)

			err := f.svc.Delete(context.Background(), 9)
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), shared.FilterByID(3)).Return(model.Booking{ID: 3, GuestName: "Bo", RoomNumber: "101"}, nil)

		res, err := f.svc.Get(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Bo", res.GuestName)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), shared.FilterByID(3)).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), 3)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_List(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{SortBy: model.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	f.repo.EXPECT().GetAll(gomock.Any(), params, gDto.FilterGroup{}).Return([]model.Booking{{ID: 1}, {ID: 2}}, nil)

	res, err := f.svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestBookingService_ListDefaultsToCheckInOrder(t *testing.T) {
	f := newFixture(t)
	want := gDto.QueryParams{Limit: 5, Page: 1, SortBy: model.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	f.repo.EXPECT().GetAll(gomock.Any(), want, gDto.FilterGroup{}).Return([]model.Booking{}, nil)

	res, err := f.svc.List(context.Background(), gDto.QueryParams{Limit: 5, Page: 1})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestBookingService_Availability(t *testing.T) {
	req := dto.BookingRequest{RoomNumber: "101", CheckInDate: "2024-06-01", CheckOutDate: "2024-06-03"}
	stay := model.Stay{RoomNumber: "101", CheckIn: "2024-06-01", CheckOut: "2024-06-03"}

	t.Run("free", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().FindOverlap(gomock.Any(), stay, int64(0)).Return(int64(0), nil)

		res, err := f.svc.Availability(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.Available)
		assert.Zero(t, res.ConflictID)
	})

	t.Run("taken", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().FindOverlap(gomock.Any(), stay, int64(0)).Return(int64(4), nil)

		res, err := f.svc.Availability(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, int64(4), res.ConflictID)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		bad := req
		bad.RoomNumber = "999"

		_, err := f.svc.Availability(context.Background(), bad)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
