package service

import (
	"sync"

	"github.com/noah-isme/booking-api/internal/models"
)

// Notifier receives user-visible notifications produced by the booking flow.
type Notifier interface {
	Notify(n models.Notification)
}

// NotificationQueue buffers notifications for one booking session until the client
// collects them.
type NotificationQueue struct {
	mu    sync.Mutex
	items []models.Notification
}

// NewNotificationQueue constructs an empty queue.
func NewNotificationQueue() *NotificationQueue {
	return &NotificationQueue{}
}

// Notify appends a notification.
func (q *NotificationQueue) Notify(n models.Notification) {
	q.mu.Lock()
	q.items = append(q.items, n)
	q.mu.Unlock()
}

// Drain returns the queued notifications in emission order and empties the queue.
func (q *NotificationQueue) Drain() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	if items == nil {
		return []models.Notification{}
	}
	return items
}

// Len reports how many notifications are pending.
func (q *NotificationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func errorNotification(message string) models.Notification {
	return models.Notification{Level: models.NotificationError, Message: message}
}

func successNotification(message string) models.Notification {
	return models.Notification{Level: models.NotificationSuccess, Message: message}
}
