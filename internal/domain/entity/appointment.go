package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus tracks where an appointment sits in the confirmation
// workflow. It is the single source of truth for workflow position.
type AppointmentStatus string

const (
	StatusScheduled            AppointmentStatus = "SCHEDULED"
	StatusPendingConfirmation  AppointmentStatus = "PENDING_CONFIRMATION"
	StatusTeamConfirmed        AppointmentStatus = "TEAM_CONFIRMED"
	StatusDoctorFinalConfirmed AppointmentStatus = "DOCTOR_FINAL_CONFIRMED"
	StatusNotified             AppointmentStatus = "NOTIFIED"
	StatusInProgress           AppointmentStatus = "IN_PROGRESS"
	StatusCompleted            AppointmentStatus = "COMPLETED"
	StatusCancelled            AppointmentStatus = "CANCELLED"
	StatusPostponed            AppointmentStatus = "POSTPONED"
)

// statusTransitions is the explicit state machine: every legal (from, to)
// pair. Operations must consult this table before mutating any field so a
// new transition cannot bypass the workflow invariants.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:            {StatusPendingConfirmation, StatusCancelled, StatusPostponed},
	StatusPendingConfirmation:  {StatusTeamConfirmed, StatusCancelled, StatusPostponed},
	StatusTeamConfirmed:        {StatusDoctorFinalConfirmed, StatusCancelled, StatusPostponed},
	StatusDoctorFinalConfirmed: {StatusNotified, StatusCancelled, StatusPostponed},
	StatusNotified:             {StatusInProgress, StatusCancelled, StatusPostponed},
	StatusInProgress:           {StatusCompleted},
	StatusCompleted:            {},
	StatusCancelled:            {},
	StatusPostponed:            {StatusScheduled, StatusCancelled},
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsLive reports whether the appointment still claims its resources.
// Cancelled appointments are the only ones excluded from conflict checks.
func (s AppointmentStatus) IsLive() bool {
	return s != StatusCancelled
}

// CanBeCancelled reports whether a patient cancellation is allowed from this
// status. Surgeries that already started (or finished) cannot be cancelled.
func (s AppointmentStatus) CanBeCancelled() bool {
	switch s {
	case StatusScheduled, StatusPendingConfirmation, StatusTeamConfirmed,
		StatusDoctorFinalConfirmed, StatusNotified:
		return true
	}
	return false
}

// LiveStatuses is the status subset counted by resource-conflict checks.
func LiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		StatusScheduled, StatusPendingConfirmation, StatusTeamConfirmed,
		StatusDoctorFinalConfirmed, StatusNotified, StatusInProgress,
		StatusCompleted, StatusPostponed,
	}
}

// SurgeryAppointment is the central scheduling entity. Planned times are
// zero-padded "HH:MM" strings (time columns), so lexicographic comparison
// orders them correctly.
type SurgeryAppointment struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AnesthesiologistID *uuid.UUID `gorm:"type:uuid;index" json:"anesthesiologist_id,omitempty"`
	NurseID            *uuid.UUID `gorm:"type:uuid;index" json:"nurse_id,omitempty"`
	RoomID             int        `gorm:"not null;index" json:"room_id"`
	BedID              int        `gorm:"not null;index" json:"bed_id"`
	CreatedByID        uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`

	SurgeryName        string `gorm:"type:varchar(200);not null" json:"surgery_name"`
	SurgeryType        string `gorm:"type:varchar(100)" json:"surgery_type,omitempty"`
	SurgeryDescription string `gorm:"type:text" json:"surgery_description,omitempty"`
	PreSurgeryNotes    string `gorm:"type:text" json:"pre_surgery_notes,omitempty"`
	PostSurgeryNotes   string `gorm:"type:text" json:"post_surgery_notes,omitempty"`
	CancelReason       string `gorm:"type:text" json:"cancel_reason,omitempty"`

	PlannedDate       time.Time  `gorm:"type:date;not null;index" json:"planned_date"`
	PlannedStartTime  string     `gorm:"type:time;not null" json:"planned_start_time"`
	PlannedEndTime    string     `gorm:"type:time;not null" json:"planned_end_time"`
	EstimatedDuration int        `gorm:"not null" json:"estimated_duration"`
	ActualStartTime   *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime     *time.Time `json:"actual_end_time,omitempty"`

	Status        AppointmentStatus `gorm:"type:varchar(30);not null;default:'SCHEDULED';index" json:"status"`
	PriorityLevel SeverityLevel     `gorm:"type:varchar(20);not null;default:'NORMAL'" json:"priority_level"`

	AnesthesiologistConfirmed   bool       `gorm:"not null;default:false" json:"anesthesiologist_confirmed"`
	AnesthesiologistConfirmedAt *time.Time `json:"anesthesiologist_confirmed_at,omitempty"`
	NurseConfirmed              bool       `gorm:"not null;default:false" json:"nurse_confirmed"`
	NurseConfirmedAt            *time.Time `json:"nurse_confirmed_at,omitempty"`
	DoctorFinalConfirmed        bool       `gorm:"not null;default:false" json:"doctor_final_confirmed"`
	DoctorFinalConfirmedAt      *time.Time `json:"doctor_final_confirmed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient          Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor           User          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Anesthesiologist *User         `gorm:"foreignKey:AnesthesiologistID" json:"anesthesiologist,omitempty"`
	Nurse            *User         `gorm:"foreignKey:NurseID" json:"nurse,omitempty"`
	Room             OperatingRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Bed              OperatingBed  `gorm:"foreignKey:BedID" json:"bed,omitempty"`
	CreatedBy        User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

func (SurgeryAppointment) TableName() string {
	return "surgery_appointments"
}

// Overlaps reports whether the two appointments' [start, end) windows
// intersect. Callers scope the comparison to the same planned date.
func (a *SurgeryAppointment) Overlaps(other *SurgeryAppointment) bool {
	return a.PlannedStartTime < other.PlannedEndTime && a.PlannedEndTime > other.PlannedStartTime
}

// PlannedStartAt combines the planned date and start time into a timestamp
// in the given location.
func (a *SurgeryAppointment) PlannedStartAt(loc *time.Location) (time.Time, error) {
	return combineDateTime(a.PlannedDate, a.PlannedStartTime, loc)
}

func combineDateTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// HasTeamAssigned reports whether any confirmable team role is attached.
func (a *SurgeryAppointment) HasTeamAssigned() bool {
	return a.AnesthesiologistID != nil || a.NurseID != nil
}
