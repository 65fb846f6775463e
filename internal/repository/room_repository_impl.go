package repository

import (
	"errors"

	"surgery-reservation-system/internal/domain/entity"
	domainRepo "surgery-reservation-system/internal/domain/repository"

	"gorm.io/gorm"
)

type operatingRoomRepository struct{}

func NewOperatingRoomRepository() domainRepo.OperatingRoomRepository {
	return &operatingRoomRepository{}
}

func (r *operatingRoomRepository) Create(db *gorm.DB, room *entity.OperatingRoom) error {
	return db.Create(room).Error
}

func (r *operatingRoomRepository) FindByID(db *gorm.DB, id int) (*entity.OperatingRoom, error) {
	var room entity.OperatingRoom
	err := db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *operatingRoomRepository) FindAll(db *gorm.DB) ([]entity.OperatingRoom, error) {
	var rooms []entity.OperatingRoom
	if err := db.Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

type operatingBedRepository struct{}

func NewOperatingBedRepository() domainRepo.OperatingBedRepository {
	return &operatingBedRepository{}
}

func (r *operatingBedRepository) Create(db *gorm.DB, bed *entity.OperatingBed) error {
	return db.Create(bed).Error
}

func (r *operatingBedRepository) FindByID(db *gorm.DB, id int) (*entity.OperatingBed, error) {
	var bed entity.OperatingBed
	err := db.Where("id = ?", id).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

func (r *operatingBedRepository) FindByRoomID(db *gorm.DB, roomID int) ([]entity.OperatingBed, error) {
	var beds []entity.OperatingBed
	if err := db.Where("room_id = ?", roomID).Order("id").Find(&beds).Error; err != nil {
		return nil, err
	}
	return beds, nil
}
