package converter

import (
	"surgery-reservation-system/internal/delivery/dto"
	"surgery-reservation-system/internal/domain/entity"
)

func RoomToResponse(room *entity.OperatingRoom) *dto.RoomResponse {
	resp := &dto.RoomResponse{
		ID:            room.ID,
		RoomNumber:    room.RoomNumber,
		RoomName:      room.RoomName,
		FloorNumber:   room.FloorNumber,
		EquipmentList: room.EquipmentList,
		Status:        room.Status,
	}
	for i := range room.Beds {
		resp.Beds = append(resp.Beds, *BedToResponse(&room.Beds[i]))
	}
	return resp
}

func BedToResponse(bed *entity.OperatingBed) *dto.BedResponse {
	return &dto.BedResponse{
		ID:        bed.ID,
		RoomID:    bed.RoomID,
		BedNumber: bed.BedNumber,
		BedType:   bed.BedType,
		Status:    bed.Status,
	}
}

func RoomsToResponses(rooms []entity.OperatingRoom) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		responses = append(responses, *RoomToResponse(&rooms[i]))
	}
	return responses
}
