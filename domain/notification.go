package domain

import "time"

// Severity grades a user-visible notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a toast or alert shown to the user.
type Notification struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsToast reports whether the notification is a transient confirmation
// rather than a warning or failure.
func (n Notification) IsToast() bool {
	return n.Severity == SeveritySuccess || n.Severity == SeverityInfo
}
