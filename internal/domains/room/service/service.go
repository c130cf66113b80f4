package service

import (
	"context"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	"hotel/shared/failure"
)

type Room interface {
	GetAll(ctx context.Context) dto.GetRoomsResponse
	Get(ctx context.Context, number string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo repository.Room
	otel otel.Otel
}

func New(repo repository.Room, otel otel.Otel) Room {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetRoomsResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()

	res.FromModels(s.repo.GetAll())

	return res
}

func (s *serviceImpl) Get(ctx context.Context, number string) (res dto.RoomResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()

	room, ok := s.repo.Get(strings.TrimSpace(number))
	if !ok {
		return res, failure.NotFound(dto.MessageNotFound) //nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}
