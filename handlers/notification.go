package handlers

import (
	"net/http"

	"opaleka/middleware"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
)

// ListNotifications handles GET /notifications.
func ListNotifications(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	notifications, err := NotificationService.ListForUser(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

// UnreadNotificationCount handles GET /notifications/unread-count.
func UnreadNotificationCount(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	count, err := NotificationService.UnreadCount(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// MarkNotificationRead handles PUT /notifications/:id/read.
func MarkNotificationRead(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if err := NotificationService.MarkRead(c.Param("id"), userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read."})
}

// DeleteNotification handles DELETE /notifications/:id.
func DeleteNotification(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if err := NotificationService.Delete(c.Param("id"), userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification deleted."})
}
