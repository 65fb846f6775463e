package repository

import (
	"surgery-reservation-system/internal/domain/entity"
	domainRepo "surgery-reservation-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByRecipient(db *gorm.DB, recipientID uuid.UUID, page, limit int) ([]entity.Notification, int64, error) {
	var notifications []entity.Notification
	var total int64

	query := db.Model(&entity.Notification{}).Where("recipient_id = ?", recipientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) FindUnreadByRecipient(db *gorm.DB, recipientID uuid.UUID) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := db.Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(db *gorm.DB, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAsRead(db *gorm.DB, id int64, recipientID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": db.NowFunc(),
		})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) DeleteByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) error {
	return db.Where("related_appointment_id = ?", appointmentID).Delete(&entity.Notification{}).Error
}
