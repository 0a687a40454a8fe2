package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/interfaces/http/response"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, actor entities.Actor, limit int) ([]*entities.Notification, error)
}

// NotificationHandler serves the caller's notifications
type NotificationHandler struct {
	notificationUsecase NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUsecase NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// ListNotifications GET /api/v1/notifications?limit=
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	notifications, err := h.notificationUsecase.ListNotifications(c.Request.Context(), caller, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": notifications})
}
