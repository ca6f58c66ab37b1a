package store

import (
	"time"

	"campus-grove/internal/models"
)

// NotificationLog is the append-only notification feed, newest first.
// Records are never mutated once appended. Like Store, a log instance is
// owned by a single actor and is not safe for concurrent use.
type NotificationLog struct {
	ids   IDGen
	items []*models.Notification
}

func NewNotificationLog(ids IDGen) *NotificationLog {
	if ids == nil {
		ids = RandomIDs{}
	}
	return &NotificationLog{ids: ids}
}

// Append prepends a new notification and returns it.
func (l *NotificationLog) Append(text string) *models.Notification {
	n := &models.Notification{
		ID:        l.ids.NewID(),
		Text:      text,
		CreatedAt: time.Now(),
	}
	l.items = append([]*models.Notification{n}, l.items...)
	return n
}

// Restore prepends an existing record, used when reloading persisted state.
func (l *NotificationLog) Restore(n *models.Notification) {
	l.items = append([]*models.Notification{n}, l.items...)
}

// List returns a snapshot copy of the feed, newest first.
func (l *NotificationLog) List() []*models.Notification {
	out := make([]*models.Notification, len(l.items))
	copy(out, l.items)
	return out
}

func (l *NotificationLog) Count() int { return len(l.items) }
