package service_test

import (
	"context"
	"net/http"
	"testing"

	"hotel/infras/otel/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().GetAll().Return([]model.Room{{Number: "101", Capacity: 2}, {Number: "102", Capacity: 3}})

	res := svc.GetAll(context.Background())

	assert.Equal(t, dto.GetRoomsResponse{Rooms: []dto.RoomResponse{
		{Number: "101", Capacity: 2},
		{Number: "102", Capacity: 3},
	}}, res)
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	t.Run("known room", func(t *testing.T) {
		mockRepo.EXPECT().Get("201").Return(model.Room{Number: "201", Capacity: 5}, true)

		res, err := svc.Get(context.Background(), " 201 ")
		require.NoError(t, err)
		assert.Equal(t, dto.RoomResponse{Number: "201", Capacity: 5}, res)
	})

	t.Run("unknown room", func(t *testing.T) {
		mockRepo.EXPECT().Get("999").Return(model.Room{}, false)

		_, err := svc.Get(context.Background(), "999")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, dto.MessageNotFound, err.Error())
	})
}
