package entity

import (
	"time"
)

// OperatingBed is a bed inside an operating room.
type OperatingBed struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    int       `gorm:"not null;index" json:"room_id"`
	BedNumber string    `gorm:"type:varchar(20);not null" json:"bed_number"`
	BedType   string    `gorm:"type:varchar(50)" json:"bed_type,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Room OperatingRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (OperatingBed) TableName() string {
	return "operating_beds"
}
