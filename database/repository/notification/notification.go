package notificationRepo

import "opaleka/models"

// NotificationRepository defines data access for in-app notifications.
type NotificationRepository interface {
	// Create inserts a new notification record.
	Create(n *models.Notification) error
	// ListByUser lists a user's notifications, newest first.
	ListByUser(userID string) ([]models.Notification, error)
	// MarkRead flags a notification as read. Reports whether it matched.
	MarkRead(id, userID string) (bool, error)
	// CountUnread counts a user's unread notifications.
	CountUnread(userID string) (int64, error)
	// Delete removes a user's notification. Reports whether it matched.
	Delete(id, userID string) (bool, error)
}
