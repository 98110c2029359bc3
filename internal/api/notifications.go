package api

import (
	"net/http"
	"time"

	"moneyvault/internal/domain"
	"moneyvault/internal/vault"

	"github.com/gin-gonic/gin"
)

// NotificationResponse adds the relative-time rendering to a stored entry.
type NotificationResponse struct {
	domain.Notification
	Relative string `json:"relative"`
}

// ListNotificationsHandler returns the queue newest-first with relative
// timestamps.
func ListNotificationsHandler(queue *vault.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		items := queue.List()
		out := make([]NotificationResponse, len(items))
		for i, n := range items {
			out[i] = NotificationResponse{Notification: n, Relative: domain.RelativeTime(now, n.Timestamp)}
		}
		c.JSON(http.StatusOK, gin.H{"notifications": out, "unread": queue.UnreadCount()})
	}
}

// MarkNotificationReadHandler marks one entry read; unknown ids are a
// silent no-op.
func MarkNotificationReadHandler(queue *vault.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := queue.MarkRead(c.Param("id")); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"unread": queue.UnreadCount()})
	}
}

// UnreadCountHandler returns just the unread counter for badge polling.
func UnreadCountHandler(queue *vault.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"unread": queue.UnreadCount()})
	}
}
