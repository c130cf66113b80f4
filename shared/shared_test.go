package shared_test

import (
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestTransformFields(t *testing.T) {
	type update struct {
		GuestName  string    `db:"guest_name"`
		RoomNumber string    `db:"room_number"`
		Members    int       `db:"members"`
		LastLogin  time.Time `db:"last_login"`
		Ignored    string
		Skipped    string `db:"-"`
	}

	login := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	fields := shared.TransformFields(update{
		GuestName: "Ana",
		Members:   2,
		LastLogin: login,
		Ignored:   "x",
		Skipped:   "y",
	})

	assert.Equal(t, map[string]any{
		"guest_name": "Ana",
		"members":    2,
		"last_login": login,
	}, fields)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID(7)

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(7)}, args)
	assert.Equal(t, dto.FilterGroupOperatorAnd, filter.Operator)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: " 42 ", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "+3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := shared.ParseID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidID)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
