package entities

import "time"

type NotificationType string

const (
	NotificationApproval  NotificationType = "approval"
	NotificationRejection NotificationType = "rejection"
	NotificationReminder  NotificationType = "reminder"
	NotificationSystem    NotificationType = "system"
)

type Notification struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"user_id"`
	Title               string           `json:"title"`
	Message             string           `json:"message"`
	Type                NotificationType `json:"type"`
	Read                bool             `json:"read"`
	RelatedSubmissionID *string          `json:"related_submission_id,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}
