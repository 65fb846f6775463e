package repository

import (
	"errors"
	"time"

	"surgery-reservation-system/internal/domain/entity"
	domainRepo "surgery-reservation-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// detailPreloads mirrors the "load with full detail" read that precedes any
// workflow mutation.
func detailPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient.User").
		Preload("Doctor").
		Preload("Anesthesiologist").
		Preload("Nurse").
		Preload("Room").
		Preload("Bed")
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.SurgeryAppointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.SurgeryAppointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.SurgeryAppointment{}).Error
}

func (r *appointmentRepository) FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.SurgeryAppointment, error) {
	var appointment entity.SurgeryAppointment
	err := detailPreloads(db).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.SurgeryAppointment, error) {
	var appointment entity.SurgeryAppointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPlannedDate(db *gorm.DB, date time.Time) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := detailPreloads(db).
		Where("planned_date = ?", date.Format("2006-01-02")).
		Order("planned_start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBetweenDates(db *gorm.DB, start, end time.Time) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := detailPreloads(db).
		Where("planned_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("planned_date, planned_start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindLiveForDate(db *gorm.DB, date time.Time) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := db.
		Where("planned_date = ? AND status != ?", date.Format("2006-01-02"), entity.StatusCancelled).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindRoomScheduleForDate(db *gorm.DB, roomID int, date time.Time) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := db.
		Where("room_id = ? AND planned_date = ? AND status != ?", roomID, date.Format("2006-01-02"), entity.StatusCancelled).
		Order("planned_start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBedScheduleForDate(db *gorm.DB, bedID int, date time.Time) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := db.
		Where("bed_id = ? AND planned_date = ? AND status != ?", bedID, date.Format("2006-01-02"), entity.StatusCancelled).
		Order("planned_start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := detailPreloads(db).
		Where("doctor_id = ?", doctorID).
		Order("planned_date DESC, planned_start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByTeamMember(db *gorm.DB, userID uuid.UUID) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := detailPreloads(db).
		Where("anesthesiologist_id = ? OR nurse_id = ?", userID, userID).
		Order("planned_date DESC, planned_start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := detailPreloads(db).
		Where("patient_id = ?", patientID).
		Order("planned_date DESC, planned_start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindPendingConfirmationsForStaff(db *gorm.DB, userID uuid.UUID, date time.Time) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := detailPreloads(db).
		Where("(anesthesiologist_id = ? OR nurse_id = ?) AND planned_date = ? AND status = ?",
			userID, userID, date.Format("2006-01-02"), entity.StatusPendingConfirmation).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindOverdue(db *gorm.DB, date time.Time, currentTime string) ([]entity.SurgeryAppointment, error) {
	var appointments []entity.SurgeryAppointment
	err := db.
		Where("planned_date = ? AND planned_start_time < ? AND status = ?",
			date.Format("2006-01-02"), currentTime, entity.StatusNotified).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByStatuses(db *gorm.DB, statuses []entity.AppointmentStatus, page, limit int) ([]entity.SurgeryAppointment, int64, error) {
	var appointments []entity.SurgeryAppointment
	var total int64

	query := db.Model(&entity.SurgeryAppointment{}).Where("status IN ?", statuses)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := detailPreloads(db).
		Where("status IN ?", statuses).
		Order("planned_date DESC, planned_start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}
