package session

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Severity grades a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// notificationTTL is how long a notification stays visible before lazy
// expiry removes it from snapshots.
const notificationTTL = 5 * time.Second

// Notification is a transient message surfaced to the coach. Expired
// notifications are pruned on snapshot; any notification can also be
// dismissed explicitly by ID.
type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newNotification(severity Severity, message string, now time.Time) Notification {
	return Notification{
		ID:        ulid.Make().String(),
		Severity:  severity,
		Message:   message,
		ExpiresAt: now.Add(notificationTTL),
	}
}

func (m *model) notify(severity Severity, message string, now time.Time) {
	m.notifications = append(m.notifications, newNotification(severity, message, now))
}

// pruneNotifications drops everything already expired at the given instant.
func (m *model) pruneNotifications(now time.Time) {
	live := m.notifications[:0]
	for _, n := range m.notifications {
		if n.ExpiresAt.After(now) {
			live = append(live, n)
		}
	}
	m.notifications = live
}

func (m *model) dismissNotification(id string) bool {
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return true
		}
	}
	return false
}
