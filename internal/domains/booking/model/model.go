package model

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldGuestName    = "guest_name"
	FieldGuestPhone   = "guest_phone"
	FieldRoomNumber   = "room_number"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldMembers      = "members"

	DefaultMembers = 1
)

// SortableFields are the columns a listing may be ordered by.
var SortableFields = []string{FieldID, FieldGuestName, FieldRoomNumber, FieldCheckInDate, FieldCheckOutDate}

// Booking dates are ISO calendar dates kept as strings; lexical order is
// chronological order. They are read back through CAST so a column declared
// DATE is never turned into a time.Time by the driver.
type Booking struct {
	ID           int64  `db:"id"             insert:"-"`
	GuestName    string `db:"guest_name"`
	GuestPhone   string `db:"guest_phone"`
	RoomNumber   string `db:"room_number"`
	CheckInDate  string `db:"check_in_date"  cast:"TEXT"`
	CheckOutDate string `db:"check_out_date" cast:"TEXT"`
	Members      int    `db:"members"`
}

// Stay is the half-open interval [CheckIn, CheckOut) a booking holds on a room.
type Stay struct {
	RoomNumber string
	CheckIn    string
	CheckOut   string
}

func (b Booking) Stay() Stay {
	return Stay{
		RoomNumber: b.RoomNumber,
		CheckIn:    b.CheckInDate,
		CheckOut:   b.CheckOutDate,
	}
}

// Overlaps reports whether two stays conflict. A check-out on the same day as
// another check-in does not.
func Overlaps(a, b Stay) bool {
	return a.RoomNumber == b.RoomNumber && a.CheckIn < b.CheckOut && a.CheckOut > b.CheckIn
}
