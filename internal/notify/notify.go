package notify

import "reminder_webapp/internal/logger"

// Permission is the notification side channel's gate state.
type Permission string

const (
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnavailable Permission = "unavailable"
)

// Notifier displays titled messages to the user. A denied or unavailable
// channel suppresses silently; Show never errors.
type Notifier interface {
	RequestPermission() Permission
	Show(title, body, dedupTag string)
}

// LogNotifier writes notifications to the application log. Always granted;
// used as the fallback channel and in tests.
type LogNotifier struct{}

func (LogNotifier) RequestPermission() Permission { return PermissionGranted }

func (LogNotifier) Show(title, body, dedupTag string) {
	logger.Info("notification", "title", title, "body", body, "tag", dedupTag)
}

// Multi fans a notification out to several channels.
type Multi []Notifier

func (m Multi) RequestPermission() Permission {
	granted := false
	for _, n := range m {
		if n.RequestPermission() == PermissionGranted {
			granted = true
		}
	}
	if granted {
		return PermissionGranted
	}
	return PermissionUnavailable
}

func (m Multi) Show(title, body, dedupTag string) {
	for _, n := range m {
		n.Show(title, body, dedupTag)
	}
}
