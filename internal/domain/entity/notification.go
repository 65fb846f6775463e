package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies workflow notifications.
type NotificationType string

const (
	NotificationSurgeryScheduled         NotificationType = "SURGERY_SCHEDULED"
	NotificationSurgeryCancelled         NotificationType = "SURGERY_CANCELLED"
	NotificationSurgeryUpdated           NotificationType = "SURGERY_UPDATED"
	NotificationSurgeryUpdate            NotificationType = "SURGERY_UPDATE"
	NotificationSurgeryComplete          NotificationType = "SURGERY_COMPLETE"
	NotificationTeamConfirmationRequest  NotificationType = "TEAM_CONFIRMATION_REQUEST"
	NotificationDoctorFinalConfirmation  NotificationType = "DOCTOR_FINAL_CONFIRMATION_REQUEST"
	NotificationPatientSurgeryNotice     NotificationType = "PATIENT_SURGERY_NOTICE"
)

// Notification is a delivered workflow message. Rows are owned by the
// notification sink; the workflow engine never reads them back.
type Notification struct {
	ID                   int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderID             *uuid.UUID        `gorm:"type:uuid" json:"sender_id,omitempty"`
	Type                 NotificationType  `gorm:"type:varchar(50);not null" json:"type"`
	Title                string            `gorm:"type:varchar(200);not null" json:"title"`
	Content              string            `gorm:"type:text;not null" json:"content"`
	RelatedAppointmentID *uuid.UUID        `gorm:"type:uuid;index" json:"related_appointment_id,omitempty"`
	IsRead               bool              `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt               *time.Time        `json:"read_at,omitempty"`
	CreatedAt            time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
