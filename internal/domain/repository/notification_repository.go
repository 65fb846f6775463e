package repository

import (
	"surgery-reservation-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByRecipient(db *gorm.DB, recipientID uuid.UUID, page, limit int) ([]entity.Notification, int64, error)
	FindUnreadByRecipient(db *gorm.DB, recipientID uuid.UUID) ([]entity.Notification, error)
	CountUnread(db *gorm.DB, recipientID uuid.UUID) (int64, error)
	MarkAsRead(db *gorm.DB, id int64, recipientID uuid.UUID) (int64, error)
	DeleteByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) error
}
