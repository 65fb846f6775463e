package repository

import (
	"surgery-reservation-system/internal/domain/entity"
	domainRepo "surgery-reservation-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cancellationRecordRepository struct{}

func NewCancellationRecordRepository() domainRepo.CancellationRecordRepository {
	return &cancellationRecordRepository{}
}

func (r *cancellationRecordRepository) Create(db *gorm.DB, record *entity.CancellationRecord) error {
	return db.Create(record).Error
}

func (r *cancellationRecordRepository) CountByUserAndMonth(db *gorm.DB, userID uuid.UUID, year int, month int) (int64, error) {
	var count int64
	err := db.Model(&entity.CancellationRecord{}).
		Where("user_id = ? AND EXTRACT(YEAR FROM cancellation_date) = ? AND EXTRACT(MONTH FROM cancellation_date) = ?",
			userID, year, month).
		Count(&count).Error
	return count, err
}

func (r *cancellationRecordRepository) FindByUser(db *gorm.DB, userID uuid.UUID) ([]entity.CancellationRecord, error) {
	var records []entity.CancellationRecord
	err := db.Where("user_id = ?", userID).
		Order("cancellation_date DESC, cancellation_time DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *cancellationRecordRepository) DeleteByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) error {
	return db.Where("appointment_id = ?", appointmentID).Delete(&entity.CancellationRecord{}).Error
}
