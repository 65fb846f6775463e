package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient status values. The surgery workflow flips these as a side effect
// of scheduling, cancellation and completion.
const (
	PatientStatusWaiting   = "WAITING"
	PatientStatusScheduled = "SCHEDULED"
	PatientStatusCompleted = "已完成手术"
)

// Patient is the admitted-patient record. It belongs to the patient
// subsystem; the appointment workflow mutates only Status and LastVisitDate,
// and only through the PatientEffects port.
type Patient struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID              uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	MedicalRecordNumber string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"medical_record_number"`
	IDCard              string        `gorm:"type:varchar(18)" json:"id_card,omitempty"`
	EmergencyContact    string        `gorm:"type:varchar(100)" json:"emergency_contact,omitempty"`
	EmergencyPhone      string        `gorm:"type:varchar(20)" json:"emergency_phone,omitempty"`
	MedicalHistory      string        `gorm:"type:text" json:"medical_history,omitempty"`
	Allergies           string        `gorm:"type:text" json:"allergies,omitempty"`
	CurrentMedications  string        `gorm:"type:text" json:"current_medications,omitempty"`
	AdmissionDate       *time.Time    `gorm:"type:date" json:"admission_date,omitempty"`
	WardNumber          string        `gorm:"type:varchar(50)" json:"ward_number,omitempty"`
	BedNumber           string        `gorm:"type:varchar(20)" json:"bed_number,omitempty"`
	DiseaseDescription  string        `gorm:"type:text;not null" json:"disease_description"`
	SeverityLevel       SeverityLevel `gorm:"type:varchar(20);not null;default:'NORMAL'" json:"severity_level"`
	AssignedDoctorID    *uuid.UUID    `gorm:"type:uuid;index" json:"assigned_doctor_id,omitempty"`
	Status              string        `gorm:"type:varchar(20);not null;default:'WAITING'" json:"status"`
	LastVisitDate       *time.Time    `gorm:"type:date" json:"last_visit_date,omitempty"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User           User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssignedDoctor *User `gorm:"foreignKey:AssignedDoctorID" json:"assigned_doctor,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// SeverityLevel ranks how urgent a patient's condition is. Informational
// only: it never gates a workflow transition.
type SeverityLevel string

const (
	SeverityEmergency SeverityLevel = "EMERGENCY"
	SeverityUrgent    SeverityLevel = "URGENT"
	SeverityNormal    SeverityLevel = "NORMAL"
	SeverityLow       SeverityLevel = "LOW"
)
