package service

import (
	"context"
	"errors"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	messageListFailed         = "Failed to fetch bookings"
	messageGetFailed          = "Failed to fetch booking"
	messageCreateFailed       = "Failed to create booking"
	messageUpdateFailed       = "Failed to update booking"
	messageDeleteFailed       = "Failed to delete booking"
	messageAvailabilityFailed = "Failed to check availability"
)

type Booking interface {
	List(ctx context.Context, params gDto.QueryParams) ([]dto.BookingResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	Create(ctx context.Context, req dto.BookingRequest) (dto.BookingResponse, error)
	Update(ctx context.Context, id int64, req dto.BookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id int64) error
	Availability(ctx context.Context, req dto.BookingRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		otel:     otel,
	}
}

// List returns bookings by check-in date, ties broken by id, unless params
// names another sortable column.
func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if params.SortBy == "" {
		params.SortBy = model.FieldCheckInDate
		params.SortDir = gDto.SortDirAsc
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.Internal(messageListFailed, err) //nolint:wrapcheck
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get booking")

		return res, failure.Internal(messageGetFailed, err) //nolint:wrapcheck
	}

	if booking.ID == 0 {
		return res, failure.NotFound(dto.MessageNotFound) //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// Create admits a booking. The overlap check and the insert share one
// immediate transaction, so two racing requests for the same dates cannot
// both pass the check.
func (s *serviceImpl) Create(ctx context.Context, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = req.Validate(s.roomRepo.Catalog()); err != nil {
		return res, err
	}

	booking := req.ToModel()

	err = s.repo.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.ensureAvailable(ctx, tx, booking.Stay(), 0); err != nil {
			return err
		}

		id, err := s.repo.InsertTx(ctx, tx, booking)
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking.ID = id

		return nil
	})
	if err != nil {
		return res, writeError(err, booking.RoomNumber, messageCreateFailed)
	}

	log.Info().Int64("id", booking.ID).Str("room", booking.RoomNumber).Msg("Booking created")

	res.FromModel(booking)

	return res, nil
}

// Update replaces every attribute of an existing booking. The booking itself
// is left out of the overlap check.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = req.Validate(s.roomRepo.Catalog()); err != nil {
		return res, err
	}

	booking := req.ToModel()
	booking.ID = id

	err = s.repo.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, shared.FilterByID(id))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !exist {
			return failure.NotFound(dto.MessageNotFound) //nolint:wrapcheck
		}

		if err := s.ensureAvailable(ctx, tx, booking.Stay(), id); err != nil {
			return err
		}

		affected, err := s.repo.UpdateTx(ctx, tx, dto.UpdateFields(booking), shared.FilterByID(id))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if affected == 0 {
			return failure.NotFound(dto.MessageNotFound) //nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		return res, writeError(err, booking.RoomNumber, messageUpdateFailed)
	}

	log.Info().Int64("id", id).Str("room", booking.RoomNumber).Msg("Booking updated")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete booking")

		return failure.Internal(messageDeleteFailed, err) //nolint:wrapcheck
	}

	if affected == 0 {
		return failure.NotFound(dto.MessageNotFound) //nolint:wrapcheck
	}

	log.Info().Int64("id", id).Msg("Booking deleted")

	return nil
}

// Availability answers whether a stay could be booked right now. It takes no
// lock, so the answer can be stale by the time a create arrives.
func (s *serviceImpl) Availability(ctx context.Context, req dto.BookingRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Availability")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = req.ValidateStay(s.roomRepo.Catalog()); err != nil {
		return res, err
	}

	stay := model.Stay{
		RoomNumber: req.RoomNumber.String(),
		CheckIn:    req.CheckInDate.String(),
		CheckOut:   req.CheckOutDate.String(),
	}

	conflictID, err := s.repo.FindOverlap(ctx, stay, 0)
	if err != nil {
		log.Error().Err(err).Str("room", stay.RoomNumber).Msg("failed to check availability")

		return res, failure.Internal(messageAvailabilityFailed, err) //nolint:wrapcheck
	}

	return dto.AvailabilityResponse{
		RoomNumber:   stay.RoomNumber,
		CheckInDate:  stay.CheckIn,
		CheckOutDate: stay.CheckOut,
		Available:    conflictID == 0,
		ConflictID:   conflictID,
	}, nil
}

func (s *serviceImpl) ensureAvailable(ctx context.Context, tx *sqlx.Tx, stay model.Stay, excludeID int64) error {
	conflictID, err := s.repo.FindOverlapTx(ctx, tx, stay, excludeID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if conflictID != 0 {
		log.Warn().Str("room", stay.RoomNumber).Int64("conflict", conflictID).Msg("Rejected overlapping booking")

		return failure.Conflict(dto.ConflictMessage(stay.RoomNumber)) //nolint:wrapcheck
	}

	return nil
}

// writeError keeps failures as they are, turns a trigger rejection into a
// conflict and hides anything else behind a generic 500.
func writeError(err error, roomNumber, message string) error {
	switch {
	case failure.IsFailure(err):
		return err
	case errors.Is(err, repository.ErrOverlap):
		return failure.Conflict(dto.ConflictMessage(roomNumber)) //nolint:wrapcheck
	default:
		log.Error().Err(err).Msg(message)

		return failure.Internal(message, err) //nolint:wrapcheck
	}
}
