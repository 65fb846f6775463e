package usecase

import (
	"context"
	"errors"

	"surgery-reservation-system/internal/converter"
	"surgery-reservation-system/internal/delivery/dto"
	"surgery-reservation-system/internal/delivery/http/middleware"
	"surgery-reservation-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	GetMyNotifications(ctx context.Context, page, limit int) (*dto.NotificationListResponse, error)
	GetUnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, notificationID int64) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) GetMyNotifications(ctx context.Context, page, limit int) (*dto.NotificationListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := u.notificationRepo.FindByRecipient(u.db.WithContext(ctx), userID, page, limit)
	if err != nil {
		u.log.Warnf("Failed to list notifications for user %s: %+v", userID, err)
		return nil, err
	}
	unread, err := u.notificationRepo.CountUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (u *notificationUsecase) GetUnreadCount(ctx context.Context) (int64, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return 0, ErrUserNotFound
	}
	return u.notificationRepo.CountUnread(u.db.WithContext(ctx), userID)
}

// MarkAsRead only touches the caller's own rows; marking someone else's
// notification reports not-found.
func (u *notificationUsecase) MarkAsRead(ctx context.Context, notificationID int64) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}
	affected, err := u.notificationRepo.MarkAsRead(u.db.WithContext(ctx), notificationID, userID)
	if err != nil {
		u.log.Warnf("Failed to mark notification %d read: %+v", notificationID, err)
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
