package service

import (
	"context"
	"errors"

	"hotel/infras/otel"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetUsersResponse, error)
	Delete(ctx context.Context, id, actorID int64) error
}

type serviceImpl struct {
	repo repository.User
	otel otel.Otel
}

func New(repo repository.User, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, repository.FilterByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("failed to check username")

		return res, failure.Internal(dto.MessageSaveFailed, err) //nolint:wrapcheck
	}

	if taken {
		return res, failure.Conflict(dto.MessageTaken) //nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if errors.Is(err, password.ErrTooLong) {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err != nil {
		return res, failure.Internal(dto.MessageSaveFailed, err) //nolint:wrapcheck
	}

	user := req.ToModel(hashed)

	user.ID, err = s.repo.Insert(ctx, user)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("failed to insert user")

		return res, failure.Internal(dto.MessageSaveFailed, err) //nolint:wrapcheck
	}

	log.Info().Int64("id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("User created")

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	users, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, failure.Internal(dto.MessageListFailed, err) //nolint:wrapcheck
	}

	res.FromModels(users)

	return res, nil
}

// Delete removes a user. An account cannot delete itself.
func (s *serviceImpl) Delete(ctx context.Context, id, actorID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if id == actorID {
		return failure.BadRequestFromString(dto.MessageDeleteSelf) //nolint:wrapcheck
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete user")

		return failure.Internal(dto.MessageDeleteFailed, err) //nolint:wrapcheck
	}

	if affected == 0 {
		return failure.NotFound(dto.MessageNotFound) //nolint:wrapcheck
	}

	log.Info().Int64("id", id).Int64("by", actorID).Msg("User deleted")

	return nil
}
