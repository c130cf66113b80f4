package dto

import (
	"hotel/internal/domains/room/model"
)

const MessageNotFound = "Room not found"

type RoomResponse struct {
	Number   string `json:"room_number" example:"101"`
	Capacity int    `json:"capacity"    example:"2"`
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.Number = room.Number
	r.Capacity = room.Capacity
}

type GetRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room) {
	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}
}
