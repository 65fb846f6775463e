package service

import (
	"time"

	"surgery-reservation-system/internal/domain/entity"
	"surgery-reservation-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatientEffects is the only doorway through which the appointment workflow
// touches patient records. Callers pass their transaction so the patient
// update commits or rolls back with the appointment change.
type PatientEffects interface {
	MarkScheduled(tx *gorm.DB, patientID uuid.UUID) error
	MarkWaiting(tx *gorm.DB, patientID uuid.UUID) error
	MarkCompleted(tx *gorm.DB, patientID uuid.UUID, visitDate time.Time) error
}

type patientEffects struct {
	patientRepo repository.PatientRepository
}

func NewPatientEffects(patientRepo repository.PatientRepository) PatientEffects {
	return &patientEffects{patientRepo: patientRepo}
}

func (e *patientEffects) MarkScheduled(tx *gorm.DB, patientID uuid.UUID) error {
	return e.patientRepo.UpdateStatus(tx, patientID, entity.PatientStatusScheduled)
}

func (e *patientEffects) MarkWaiting(tx *gorm.DB, patientID uuid.UUID) error {
	return e.patientRepo.UpdateStatus(tx, patientID, entity.PatientStatusWaiting)
}

func (e *patientEffects) MarkCompleted(tx *gorm.DB, patientID uuid.UUID, visitDate time.Time) error {
	if err := e.patientRepo.UpdateStatus(tx, patientID, entity.PatientStatusCompleted); err != nil {
		return err
	}
	return e.patientRepo.UpdateLastVisitDate(tx, patientID, visitDate)
}
