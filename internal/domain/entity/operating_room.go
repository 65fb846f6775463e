package entity

import (
	"time"
)

// Operating room / bed availability states
const (
	ResourceStatusAvailable   = "AVAILABLE"
	ResourceStatusOccupied    = "OCCUPIED"
	ResourceStatusMaintenance = "MAINTENANCE"
	ResourceStatusReserved    = "RESERVED"
)

// OperatingRoom is a bookable surgical theatre.
type OperatingRoom struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomNumber    string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"room_number"`
	RoomName      string    `gorm:"type:varchar(100);not null" json:"room_name"`
	FloorNumber   int       `json:"floor_number,omitempty"`
	EquipmentList string    `gorm:"type:text" json:"equipment_list,omitempty"`
	Status        string    `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Beds []OperatingBed `gorm:"foreignKey:RoomID" json:"beds,omitempty"`
}

func (OperatingRoom) TableName() string {
	return "operating_rooms"
}
