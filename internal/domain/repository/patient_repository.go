package repository

import (
	"time"

	"surgery-reservation-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status string) error
	UpdateLastVisitDate(db *gorm.DB, id uuid.UUID, date time.Time) error
}
