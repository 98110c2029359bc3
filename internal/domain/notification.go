package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationCap bounds the persisted queue; the oldest entries beyond it
// are dropped.
const NotificationCap = 50

// Notification is one user-visible event. Read flips false to true once and
// never reopens.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// NewNotification stamps id and timestamp for a fresh unread entry.
func NewNotification(message, ntype string) Notification {
	return Notification{
		ID:        "notif_" + uuid.NewString(),
		Message:   message,
		Type:      ntype,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}
}

// RelativeTime renders a timestamp relative to now ("Just now", "5m ago",
// "3h ago", "2d ago"), falling back to a plain date after a week. Pure
// function of its inputs.
func RelativeTime(now, ts time.Time) string {
	minutes := int(now.Sub(ts).Minutes())
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	return ts.Format("1/2/2006")
}
