package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/failure"
	"hotel/shared/validator"
)

const (
	MessageRequired     = "All fields are required"
	MessagePhone        = "Phone must be exactly 10 digits"
	MessageInvalidDate  = "Invalid date format"
	MessageDateOrder    = "Check-out date must be after check-in date"
	MessageInvalidID    = "Invalid booking id"
	MessageNotFound     = "Booking not found"
	messageRoomFormat   = "Room must be one of: %s"
	messageMembers      = "Members must be between 1 and %d for Room %s"
	messageConflict     = "Room %s is already booked for the selected dates"
	validationTagPhone  = "len=10,number"
	validationTagDate   = "datetime=2006-01-02"
	errUnsupportedField = "unsupported value for booking field"
)

// ConflictMessage names the room whose dates are already taken.
func ConflictMessage(roomNumber string) string {
	return fmt.Sprintf(messageConflict, roomNumber)
}

// Field accepts any JSON scalar and keeps its text form. Numbers keep their
// literal spelling, null becomes empty.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("failed to decode string field: %w", err)
		}

		*f = Field(str)
	case data[0] == '{' || data[0] == '[':
		return errors.New(errUnsupportedField)
	default:
		*f = Field(data)
	}

	return nil
}

func (f Field) String() string {
	return string(f)
}

// BookingRequest is a raw booking submission for create and update.
type BookingRequest struct {
	GuestName    Field `json:"guest_name"     swaggertype:"string" example:"Ana Lima"`
	GuestPhone   Field `json:"guest_phone"    swaggertype:"string" example:"0812345678"`
	RoomNumber   Field `json:"room_number"    swaggertype:"string" example:"101"`
	CheckInDate  Field `json:"check_in_date"  swaggertype:"string" example:"2024-06-01"`
	CheckOutDate Field `json:"check_out_date" swaggertype:"string" example:"2024-06-05"`
	Members      Field `json:"members"        swaggertype:"string" example:"2"`
}

// ParseBooking decodes a submission and trims every field. An empty body is an empty submission.
func ParseBooking(r io.Reader) (BookingRequest, error) {
	var req BookingRequest

	if err := validator.Decode(r, &req); err != nil {
		return req, err
	}

	req.Normalize()

	return req, nil
}

func (r *BookingRequest) Normalize() {
	for _, field := range []*Field{&r.GuestName, &r.GuestPhone, &r.RoomNumber, &r.CheckInDate, &r.CheckOutDate, &r.Members} {
		*field = Field(strings.TrimSpace(string(*field)))
	}
}

// Validate runs the admission field checks in order and reports the first
// failure as a 400.
func (r *BookingRequest) Validate(catalog roomModel.Catalog) error {
	if r.GuestName == "" || r.GuestPhone == "" || r.RoomNumber == "" || r.CheckInDate == "" || r.CheckOutDate == "" {
		return failure.BadRequestFromString(MessageRequired) //nolint:wrapcheck
	}

	if !validator.Check(r.GuestPhone.String(), validationTagPhone) {
		return failure.BadRequestFromString(MessagePhone) //nolint:wrapcheck
	}

	if err := r.validateStay(catalog); err != nil {
		return err
	}

	room := r.RoomNumber.String()
	capacity := catalog.Capacity(room)

	members, err := r.members()
	if err != nil || members < 1 || members > capacity {
		return failure.BadRequestFromString(fmt.Sprintf(messageMembers, capacity, room)) //nolint:wrapcheck
	}

	return nil
}

// ValidateStay checks only the room and the dates, for availability lookups.
func (r *BookingRequest) ValidateStay(catalog roomModel.Catalog) error {
	if r.RoomNumber == "" || r.CheckInDate == "" || r.CheckOutDate == "" {
		return failure.BadRequestFromString(MessageRequired) //nolint:wrapcheck
	}

	return r.validateStay(catalog)
}

func (r *BookingRequest) validateStay(catalog roomModel.Catalog) error {
	if !catalog.Has(r.RoomNumber.String()) {
		return failure.BadRequestFromString(fmt.Sprintf(messageRoomFormat, strings.Join(catalog.Numbers(), ", "))) //nolint:wrapcheck
	}

	if !validator.Check(r.CheckInDate.String(), validationTagDate) || !validator.Check(r.CheckOutDate.String(), validationTagDate) {
		return failure.BadRequestFromString(MessageInvalidDate) //nolint:wrapcheck
	}

	if r.CheckOutDate <= r.CheckInDate {
		return failure.BadRequestFromString(MessageDateOrder) //nolint:wrapcheck
	}

	return nil
}

func (r *BookingRequest) members() (int, error) {
	if r.Members == "" {
		return model.DefaultMembers, nil
	}

	members, err := strconv.Atoi(r.Members.String())
	if err != nil {
		return 0, fmt.Errorf("members is not an integer: %w", err)
	}

	return members, nil
}

// ToModel builds the row to store. Call it only after Validate succeeded.
func (r *BookingRequest) ToModel() model.Booking {
	members, err := r.members()
	if err != nil {
		members = model.DefaultMembers
	}

	return model.Booking{
		GuestName:    r.GuestName.String(),
		GuestPhone:   r.GuestPhone.String(),
		RoomNumber:   r.RoomNumber.String(),
		CheckInDate:  r.CheckInDate.String(),
		CheckOutDate: r.CheckOutDate.String(),
		Members:      members,
	}
}

type bookingColumns struct {
	GuestName    string `db:"guest_name"`
	GuestPhone   string `db:"guest_phone"`
	RoomNumber   string `db:"room_number"`
	CheckInDate  string `db:"check_in_date"`
	CheckOutDate string `db:"check_out_date"`
	Members      int    `db:"members"`
}

// UpdateFields returns the column map for an in-place update of every booking attribute.
func UpdateFields(booking model.Booking) map[string]any {
	return shared.TransformFields(bookingColumns{
		GuestName:    booking.GuestName,
		GuestPhone:   booking.GuestPhone,
		RoomNumber:   booking.RoomNumber,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Members:      booking.Members,
	})
}

type BookingResponse struct {
	ID           int64  `json:"id"             example:"1"`
	GuestName    string `json:"guest_name"     example:"Ana Lima"`
	GuestPhone   string `json:"guest_phone"    example:"0812345678"`
	RoomNumber   string `json:"room_number"    example:"101"`
	CheckInDate  string `json:"check_in_date"  example:"2024-06-01"`
	CheckOutDate string `json:"check_out_date" example:"2024-06-05"`
	Members      int    `json:"members"        example:"2"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.RoomNumber = model.RoomNumber
	r.CheckInDate = model.CheckInDate
	r.CheckOutDate = model.CheckOutDate
	r.Members = model.Members
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// AvailabilityResponse answers whether a room is free for a stay.
type AvailabilityResponse struct {
	RoomNumber   string `json:"room_number"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Available    bool   `json:"available"`
	ConflictID   int64  `json:"conflict_id,omitempty"`
}
