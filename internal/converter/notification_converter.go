package converter

import (
	"surgery-reservation-system/internal/delivery/dto"
	"surgery-reservation-system/internal/domain/entity"
)

func NotificationToResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:                   n.ID,
		Type:                 string(n.Type),
		Title:                n.Title,
		Content:              n.Content,
		RelatedAppointmentID: n.RelatedAppointmentID,
		IsRead:               n.IsRead,
		ReadAt:               n.ReadAt,
		CreatedAt:            n.CreatedAt,
	}
}

func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, *NotificationToResponse(&notifications[i]))
	}
	return responses
}
