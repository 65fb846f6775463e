package repository

import (
	"time"

	"surgery-reservation-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.SurgeryAppointment) error
	Save(db *gorm.DB, appointment *entity.SurgeryAppointment) error
	Delete(db *gorm.DB, id uuid.UUID) error

	// FindByIDWithDetails loads the appointment with every referenced
	// aggregate (patient+user, doctor, team, room, bed) preloaded.
	FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.SurgeryAppointment, error)

	// FindByIDForUpdate loads the bare row under a SELECT ... FOR UPDATE
	// lock. Workflow mutations go through this so concurrent callers
	// serialize on the appointment row.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.SurgeryAppointment, error)

	FindByPlannedDate(db *gorm.DB, date time.Time) ([]entity.SurgeryAppointment, error)
	FindBetweenDates(db *gorm.DB, start, end time.Time) ([]entity.SurgeryAppointment, error)
	FindLiveForDate(db *gorm.DB, date time.Time) ([]entity.SurgeryAppointment, error)
	FindRoomScheduleForDate(db *gorm.DB, roomID int, date time.Time) ([]entity.SurgeryAppointment, error)
	FindBedScheduleForDate(db *gorm.DB, bedID int, date time.Time) ([]entity.SurgeryAppointment, error)
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.SurgeryAppointment, error)
	FindByTeamMember(db *gorm.DB, userID uuid.UUID) ([]entity.SurgeryAppointment, error)
	FindByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.SurgeryAppointment, error)
	FindPendingConfirmationsForStaff(db *gorm.DB, userID uuid.UUID, date time.Time) ([]entity.SurgeryAppointment, error)
	FindOverdue(db *gorm.DB, date time.Time, currentTime string) ([]entity.SurgeryAppointment, error)
	FindByStatuses(db *gorm.DB, statuses []entity.AppointmentStatus, page, limit int) ([]entity.SurgeryAppointment, int64, error)
}
