package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/infras/otel"
	"hotel/infras/sqlite"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// OverlapMessage is the RAISE text of the bookings overlap triggers.
const OverlapMessage = "booking overlap"

// ErrOverlap means the store itself refused a write because the stay collides
// with another booking of the same room.
var ErrOverlap = errors.New(OverlapMessage)

type Booking interface {
	Transact(ctx context.Context, fn gRepo.TxFunc) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	FindOverlap(ctx context.Context, stay model.Stay, excludeID int64) (int64, error)
	FindOverlapTx(ctx context.Context, tx *sqlx.Tx, stay model.Stay, excludeID int64) (int64, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) (int64, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// OverlapFilter matches bookings of stay.RoomNumber whose interval intersects
// [stay.CheckIn, stay.CheckOut). A positive excludeID leaves that row out.
func OverlapFilter(stay model.Stay, excludeID int64) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomNumber,
			Value:    stay.RoomNumber,
			Operator: gDto.FilterOperatorEq,
		},
		gDto.Filter{
			ArgName:  "stay_end",
			Field:    model.FieldCheckInDate,
			Value:    stay.CheckOut,
			Operator: gDto.FilterOperatorLess,
		},
		gDto.Filter{
			ArgName:  "stay_start",
			Field:    model.FieldCheckOutDate,
			Value:    stay.CheckIn,
			Operator: gDto.FilterOperatorGreater,
		},
	}

	if excludeID > 0 {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// FindOverlap returns the id of one conflicting booking, or 0.
func (r *repositoryImpl) FindOverlap(ctx context.Context, stay model.Stay, excludeID int64) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlap")
	defer scope.End()

	found, err := r.Get(ctx, OverlapFilter(stay, excludeID))
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to look up overlapping booking: %w", err)
	}

	return found.ID, nil
}

func (r *repositoryImpl) FindOverlapTx(ctx context.Context, tx *sqlx.Tx, stay model.Stay, excludeID int64) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlapTx")
	defer scope.End()

	found, err := r.GetTx(ctx, tx, OverlapFilter(stay, excludeID))
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to look up overlapping booking: %w", err)
	}

	return found.ID, nil
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) (int64, error) {
	id, err := r.Repository.InsertTx(ctx, tx, booking)

	return id, translate(err)
}

func (r *repositoryImpl) UpdateTx(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
	affected, err := r.Repository.UpdateTx(ctx, tx, fields, filter)

	return affected, translate(err)
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint && strings.Contains(sqliteErr.Error(), OverlapMessage) {
		return ErrOverlap
	}

	return err
}
