package domain

import "time"

type NotificationType string

const (
	NotificationTypeAlert       NotificationType = "alert"
	NotificationTypeReminder    NotificationType = "reminder"
	NotificationTypeAchievement NotificationType = "achievement"
)

type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Type       NotificationType  `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
}
