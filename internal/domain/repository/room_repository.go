package repository

import (
	"surgery-reservation-system/internal/domain/entity"

	"gorm.io/gorm"
)

type OperatingRoomRepository interface {
	Create(db *gorm.DB, room *entity.OperatingRoom) error
	FindByID(db *gorm.DB, id int) (*entity.OperatingRoom, error)
	FindAll(db *gorm.DB) ([]entity.OperatingRoom, error)
}

type OperatingBedRepository interface {
	Create(db *gorm.DB, bed *entity.OperatingBed) error
	FindByID(db *gorm.DB, id int) (*entity.OperatingBed, error)
	FindByRoomID(db *gorm.DB, roomID int) ([]entity.OperatingBed, error)
}
