package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID                   int64      `json:"id"`
	Type                 string     `json:"type"`
	Title                string     `json:"title"`
	Content              string     `json:"content"`
	RelatedAppointmentID *uuid.UUID `json:"related_appointment_id,omitempty"`
	IsRead               bool       `json:"is_read"`
	ReadAt               *time.Time `json:"read_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unread_count"`
}
