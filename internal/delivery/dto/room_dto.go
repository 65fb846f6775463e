package dto

type RoomResponse struct {
	ID            int           `json:"id"`
	RoomNumber    string        `json:"room_number"`
	RoomName      string        `json:"room_name"`
	FloorNumber   int           `json:"floor_number,omitempty"`
	EquipmentList string        `json:"equipment_list,omitempty"`
	Status        string        `json:"status"`
	Beds          []BedResponse `json:"beds,omitempty"`
}

type BedResponse struct {
	ID        int    `json:"id"`
	RoomID    int    `json:"room_id"`
	BedNumber string `json:"bed_number"`
	BedType   string `json:"bed_type,omitempty"`
	Status    string `json:"status"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}
