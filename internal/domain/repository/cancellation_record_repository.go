package repository

import (
	"surgery-reservation-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CancellationRecordRepository interface {
	Create(db *gorm.DB, record *entity.CancellationRecord) error
	CountByUserAndMonth(db *gorm.DB, userID uuid.UUID, year int, month int) (int64, error)
	FindByUser(db *gorm.DB, userID uuid.UUID) ([]entity.CancellationRecord, error)
	DeleteByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) error
}
