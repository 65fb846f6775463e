package handler

import (
	"net/http"
	"strconv"

	"surgery-reservation-system/internal/usecase"
	"surgery-reservation-system/pkg/response"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
	}
}

// GetMyNotifications lists the caller's notifications
// @Summary List my notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.notificationUsecase.GetMyNotifications(r.Context(), page, limit)
	if err != nil {
		if err == usecase.ErrUserNotFound {
			response.Unauthorized(w, "Invalid token")
			return
		}
		response.InternalServerError(w, "Failed to list notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", list)
}

// GetUnreadCount returns the caller's unread notification count
// @Summary Unread notification count
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationUsecase.GetUnreadCount(r.Context())
	if err != nil {
		if err == usecase.ErrUserNotFound {
			response.Unauthorized(w, "Invalid token")
			return
		}
		response.InternalServerError(w, "Failed to count notifications")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", map[string]int64{"unread_count": count})
}

// MarkAsRead marks one of the caller's notifications as read
// @Summary Mark notification as read
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	if err := h.notificationUsecase.MarkAsRead(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		case usecase.ErrUserNotFound:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to mark notification as read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}
