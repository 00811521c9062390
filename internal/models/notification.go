package models

// NotificationLevel classifies a transient notification.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a user-visible toast emitted by the booking flow.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
}
