package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// Notifications are scoped to the authenticated user, not an account.
type notificationHandler struct {
	notificationService *services.NotificationService
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService *services.NotificationService) {
	h := &notificationHandler{notificationService: notificationService}

	notifications := rg.Group("/notifications")
	{
		notifications.POST("", h.create)
		notifications.GET("", h.list)
		notifications.POST("/:id/read", h.markRead)
		notifications.GET("/unread-count", h.unreadCount)
	}
}

func (h *notificationHandler) create(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	n, err := h.notificationService.CreateNotification(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Notification created", dto.ToNotificationResponse(n))
}

func (h *notificationHandler) list(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Notifications retrieved", dto.ToNotificationResponses(notifications))
}

func (h *notificationHandler) markRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Notification marked as read", dto.ToNotificationResponse(n))
}

func (h *notificationHandler) unreadCount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Unread count retrieved", gin.H{"unread": count})
}
